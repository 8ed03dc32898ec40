package dto

import "time"

// DriverChargeRequest is one driver plus the charge that computes their pay.
type DriverChargeRequest struct {
	DriverID    string  `json:"driver_id"`
	ChargeType  *string `json:"charge_type"`
	ChargeValue *string `json:"charge_value"`
}

// LegLocationRequest references a stop by kind and underlying id.
type LegLocationRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// AssignmentRequest is the body for creating or updating a route leg.
type AssignmentRequest struct {
	Drivers            []DriverChargeRequest `json:"drivers"`
	Locations          []LegLocationRequest  `json:"locations"`
	ScheduledDate      string                `json:"scheduled_date"`
	ScheduledTime      string                `json:"scheduled_time"`
	DriverInstructions string                `json:"driver_instructions"`
	SendSMS            bool                  `json:"send_sms"`
}

type DriverAssignmentResponse struct {
	DriverID    string  `json:"driver_id"`
	DriverName  string  `json:"driver_name,omitempty"`
	ChargeType  *string `json:"charge_type"`
	ChargeValue *string `json:"charge_value"`
}

type LegLocationResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RouteLegResponse struct {
	ID                 string                     `json:"id"`
	ScheduledDate      time.Time                  `json:"scheduled_date"`
	ScheduledTime      string                     `json:"scheduled_time"`
	DriverInstructions string                     `json:"driver_instructions,omitempty"`
	DriverAssignments  []DriverAssignmentResponse `json:"driver_assignments"`
	Locations          []LegLocationResponse      `json:"locations"`
}

type RouteResponse struct {
	ID     string             `json:"id"`
	LoadID string             `json:"load_id"`
	Legs   []RouteLegResponse `json:"legs"`
}

// DraftResponse is a stashed in-progress draft, returned so a reopened
// session can resume where the user left off.
type DraftResponse struct {
	Drivers            []DriverChargeRequest `json:"drivers"`
	Locations          []LegLocationResponse `json:"locations"`
	ScheduledDate      string                `json:"scheduled_date,omitempty"`
	ScheduledTime      string                `json:"scheduled_time,omitempty"`
	DriverInstructions string                `json:"driver_instructions,omitempty"`
	SendSMS            bool                  `json:"send_sms"`
}

// PayEstimateRequest computes estimated driver pay for display before submit.
type PayEstimateRequest struct {
	Drivers        []DriverChargeRequest `json:"drivers"`
	DistanceMiles  string                `json:"distance_miles"`
	DurationHours  string                `json:"duration_hours"`
	LoadRate       string                `json:"load_rate"`
	BilledLoadRate *string               `json:"billed_load_rate"`
}

type DriverPayResponse struct {
	DriverID  string `json:"driver_id"`
	Pay       string `json:"pay"`
	Formatted string `json:"formatted"`
}

type PayEstimateResponse struct {
	Drivers        []DriverPayResponse `json:"drivers"`
	Total          string              `json:"total"`
	TotalFormatted string              `json:"total_formatted"`
}
