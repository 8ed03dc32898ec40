package domain

import "time"

// StopType distinguishes the canonical stops a load carries.
type StopType string

const (
	StopShipper  StopType = "SHIPPER"
	StopReceiver StopType = "RECEIVER"
	StopStop     StopType = "STOP"
)

// LoadStop is an address/time-bound waypoint intrinsic to the parent load:
// its shipper, its receiver, or an intermediate stop.
type LoadStop struct {
	ID     string
	Type   StopType
	Name   string
	Street string
	City   string
	State  string
	Zip    string
	Date   time.Time
	Time   string
}

// Location is a reusable address-book entry with no date/time binding.
type Location struct {
	ID     string
	Name   string
	Street string
	City   string
	State  string
	Zip    string
}

// LegLocationKind tags the two arms of the LegLocation union.
type LegLocationKind string

const (
	KindLoadStop LegLocationKind = "loadStop"
	KindLocation LegLocationKind = "location"
)

// LegLocation is a tagged union: a stop on a route leg is either one of the
// load's canonical stops or a standalone address-book location. Exactly one
// of Stop/Location is non-nil, matching Kind.
type LegLocation struct {
	Kind     LegLocationKind
	Stop     *LoadStop
	Location *Location
}

// FromLoadStop wraps a canonical load stop as a leg location.
func FromLoadStop(stop LoadStop) LegLocation {
	return LegLocation{Kind: KindLoadStop, Stop: &stop}
}

// FromLocation wraps an address-book entry as a leg location.
func FromLocation(loc Location) LegLocation {
	return LegLocation{Kind: KindLocation, Location: &loc}
}

// LocationID returns the identity of the underlying stop or location.
// Two LegLocations are the same stop iff their LocationIDs match,
// regardless of which union arm they arrived through.
func (l LegLocation) LocationID() string {
	switch l.Kind {
	case KindLoadStop:
		if l.Stop != nil {
			return l.Stop.ID
		}
	case KindLocation:
		if l.Location != nil {
			return l.Location.ID
		}
	}
	return ""
}

// DisplayName returns the human-readable name of the underlying stop or location.
func (l LegLocation) DisplayName() string {
	switch l.Kind {
	case KindLoadStop:
		if l.Stop != nil {
			return l.Stop.Name
		}
	case KindLocation:
		if l.Location != nil {
			return l.Location.Name
		}
	}
	return ""
}

// Same reports whether two leg locations refer to the same underlying stop.
func (l LegLocation) Same(other LegLocation) bool {
	id := l.LocationID()
	return id != "" && id == other.LocationID()
}
