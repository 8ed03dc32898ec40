package dto

// CandidateLocationResponse is one entry in the stop picker: a canonical
// load stop or an address-book location, in candidate-list order.
type CandidateLocationResponse struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Zip      string `json:"zip,omitempty"`
	StopType string `json:"stop_type,omitempty"`
}

type CandidateLocationsResponse struct {
	Locations []CandidateLocationResponse `json:"locations"`
}
