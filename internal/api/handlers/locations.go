package handlers

import (
	"log"
	"net/http"

	"carrier-dispatch-service/internal/api/dto"
	"carrier-dispatch-service/internal/domain"
	"carrier-dispatch-service/internal/ports"
	"carrier-dispatch-service/internal/services"
)

type LocationHandler struct {
	Loads     ports.LoadRepository
	Locations ports.LocationRepository
}

// Candidates returns the ordered stop picker list for a load: canonical
// stops first in load order, then address-book locations.
func (h *LocationHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	loadID := r.PathValue("id")

	load, err := h.Loads.GetLoad(ctx, loadID)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "load not found")
		return
	}

	book, err := h.Locations.ListLocations(ctx, 0)
	if err != nil {
		log.Printf("list locations failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "could not list locations")
		return
	}

	extras := make([]domain.LegLocation, 0, len(book))
	for _, loc := range book {
		extras = append(extras, domain.FromLocation(*loc))
	}

	candidates := services.BuildCandidateSet(load.CanonicalStops(), extras)

	resp := dto.CandidateLocationsResponse{Locations: []dto.CandidateLocationResponse{}}
	for _, c := range candidates {
		entry := dto.CandidateLocationResponse{
			Kind: string(c.Kind),
			ID:   c.LocationID(),
			Name: c.DisplayName(),
		}
		switch c.Kind {
		case domain.KindLoadStop:
			entry.Street = c.Stop.Street
			entry.City = c.Stop.City
			entry.State = c.Stop.State
			entry.Zip = c.Stop.Zip
			entry.StopType = string(c.Stop.Type)
		case domain.KindLocation:
			entry.Street = c.Location.Street
			entry.City = c.Location.City
			entry.State = c.Location.State
			entry.Zip = c.Location.Zip
		}
		resp.Locations = append(resp.Locations, entry)
	}

	writeJSON(w, r, http.StatusOK, resp)
}
