package services

import (
	"time"

	"carrier-dispatch-service/internal/domain"
)

// ValidateDraft runs the submission checks in a fixed order and returns
// the first broken rule, mirroring the one-error-at-a-time flow the
// assignment screens surface. A nil return means the draft is submittable.
//
// Order: drivers present, every charge configured and in bounds, at least
// two stops, a real scheduled date, a valid HH:MM scheduled time.
func ValidateDraft(draft *domain.RouteLegDraft) error {
	if draft == nil || len(draft.Drivers) == 0 {
		return &domain.ValidationError{
			Field:   "drivers",
			Message: "select at least one driver",
		}
	}

	for _, charge := range draft.Drivers {
		if !charge.Configured() {
			return &domain.ValidationError{
				Field:   "drivers",
				Message: "driver " + charge.DriverID + " has no charge type or value",
			}
		}
		if err := charge.CheckBounds(); err != nil {
			return err
		}
	}

	// Two stops define at least an origin and a destination.
	if len(draft.Locations) < 2 {
		return &domain.ValidationError{
			Field:   "locations",
			Message: "select at least two locations",
		}
	}

	if draft.ScheduledDate.IsZero() {
		return &domain.ValidationError{
			Field:   "scheduledDate",
			Message: "select a valid date",
		}
	}

	if !validClockTime(draft.ScheduledTime) {
		return &domain.ValidationError{
			Field:   "scheduledTime",
			Message: "select a valid time",
		}
	}

	return nil
}

// validClockTime accepts 24h HH:MM strings only.
func validClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
