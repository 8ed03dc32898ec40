package domain

import "github.com/shopspring/decimal"

// Load is the parent aggregate a route belongs to. Only the fields the
// assignment engine reads are modeled here; the rest of the load record
// lives with its owning service.
type Load struct {
	ID              string
	RefNum          string
	Rate            decimal.Decimal
	Shipper         LoadStop
	Receiver        LoadStop
	Stops           []LoadStop
	AdditionalStops []LoadStop
}

// CanonicalStops returns the load's stops in load order:
// shipper first, intermediate and additional stops, receiver last.
func (l Load) CanonicalStops() []LoadStop {
	stops := make([]LoadStop, 0, len(l.Stops)+len(l.AdditionalStops)+2)
	stops = append(stops, l.Shipper)
	stops = append(stops, l.Stops...)
	stops = append(stops, l.AdditionalStops...)
	stops = append(stops, l.Receiver)
	return stops
}

// LegMetrics carries the scalar inputs driver pay is computed from.
// DistanceMiles and DurationHours are derived for the leg's stop sequence
// by a routing collaborator; LoadRate comes from the parent load.
// BilledLoadRate, when set, overrides LoadRate for percentage pay.
type LegMetrics struct {
	DistanceMiles  decimal.Decimal
	DurationHours  decimal.Decimal
	LoadRate       decimal.Decimal
	BilledLoadRate *decimal.Decimal
}

// EffectiveLoadRate returns the rate percentage pay is computed against.
func (m LegMetrics) EffectiveLoadRate() decimal.Decimal {
	if m.BilledLoadRate != nil {
		return *m.BilledLoadRate
	}
	return m.LoadRate
}
