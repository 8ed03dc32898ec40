package domain

import "time"

// RouteLegDraft is the in-progress assignment being edited for one leg.
// It is mutated only through the methods below so uniqueness invariants
// hold no matter what order the caller applies edits in.
type RouteLegDraft struct {
	Drivers            []DriverCharge
	Locations          []LegLocation
	DriverInstructions string
	ScheduledDate      time.Time
	ScheduledTime      string
	SendSMS            bool
}

// NewDraft returns an empty draft for a new leg.
func NewDraft() *RouteLegDraft {
	return &RouteLegDraft{}
}

// DraftFromLeg hydrates a draft from an existing persisted leg for editing.
func DraftFromLeg(leg RouteLeg) *RouteLegDraft {
	d := &RouteLegDraft{
		DriverInstructions: leg.DriverInstructions,
		ScheduledDate:      leg.ScheduledDate,
		ScheduledTime:      leg.ScheduledTime,
	}
	for _, da := range leg.DriverAssignments {
		d.Drivers = append(d.Drivers, DriverCharge{
			DriverID:    da.DriverID,
			ChargeType:  da.ChargeType,
			ChargeValue: da.ChargeValue,
		})
	}
	d.Locations = append(d.Locations, leg.Locations...)
	return d
}

// SetDrivers replaces the driver set, dropping duplicate driver ids
// (first occurrence wins).
func (d *RouteLegDraft) SetDrivers(charges []DriverCharge) {
	seen := make(map[string]struct{}, len(charges))
	next := make([]DriverCharge, 0, len(charges))
	for _, c := range charges {
		if _, ok := seen[c.DriverID]; ok {
			continue
		}
		seen[c.DriverID] = struct{}{}
		next = append(next, c)
	}
	d.Drivers = next
}

// SetLocations replaces the ordered stop selection, dropping duplicates
// by underlying location id (first occurrence wins).
func (d *RouteLegDraft) SetLocations(locations []LegLocation) {
	seen := make(map[string]struct{}, len(locations))
	next := make([]LegLocation, 0, len(locations))
	for _, loc := range locations {
		id := loc.LocationID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		next = append(next, loc)
	}
	d.Locations = next
}

// Clone returns a deep enough copy for snapshot semantics: slices are
// copied so later edits to the draft do not leak into the snapshot.
func (d *RouteLegDraft) Clone() *RouteLegDraft {
	cp := *d
	cp.Drivers = append([]DriverCharge(nil), d.Drivers...)
	cp.Locations = append([]LegLocation(nil), d.Locations...)
	return &cp
}
