package services

import "carrier-dispatch-service/internal/domain"

// BuildCandidateSet assembles the ordered list of stops a leg can select
// from: the load's canonical stops in load order, then any ad-hoc
// locations carried over from a prior selection. Duplicates by underlying
// id are dropped with the first occurrence winning, so a canonical stop
// takes priority over the same stop arriving through the prior selection.
// Rebuilding with the same inputs yields an identical ordered list.
func BuildCandidateSet(loadStops []domain.LoadStop, existing []domain.LegLocation) []domain.LegLocation {
	candidates := make([]domain.LegLocation, 0, len(loadStops)+len(existing))
	seen := make(map[string]struct{}, len(loadStops)+len(existing))

	for _, stop := range loadStops {
		if _, ok := seen[stop.ID]; ok {
			continue
		}
		seen[stop.ID] = struct{}{}
		candidates = append(candidates, domain.FromLoadStop(stop))
	}

	for _, loc := range existing {
		id := loc.LocationID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, loc)
	}

	return candidates
}

// ToggleSelection adds or removes one candidate from the selected subset.
// The returned selection is always re-derived by filtering the candidate
// list, so selection order equals candidate-list order regardless of the
// order stops were clicked in. Reordering is a separate explicit step.
func ToggleSelection(current, candidates []domain.LegLocation, item domain.LegLocation, selected bool) []domain.LegLocation {
	ids := make(map[string]struct{}, len(current)+1)
	for _, loc := range current {
		ids[loc.LocationID()] = struct{}{}
	}

	if selected {
		ids[item.LocationID()] = struct{}{}
	} else {
		delete(ids, item.LocationID())
	}

	next := make([]domain.LegLocation, 0, len(ids))
	for _, c := range candidates {
		if _, ok := ids[c.LocationID()]; ok {
			next = append(next, c)
		}
	}
	return next
}

// Reorder swaps the stop at index with its neighbor in the given
// direction ("up" or "down"). Out-of-range moves are no-ops.
func Reorder(selection []domain.LegLocation, index int, direction string) []domain.LegLocation {
	next := append([]domain.LegLocation(nil), selection...)

	var target int
	switch direction {
	case "up":
		target = index - 1
	case "down":
		target = index + 1
	default:
		return next
	}

	if index < 0 || index >= len(next) || target < 0 || target >= len(next) {
		return next
	}

	next[index], next[target] = next[target], next[index]
	return next
}

// MoveStop removes the stop at from and reinserts it at to, shifting the
// stops in between. Out-of-range indices leave the selection unchanged.
func MoveStop(selection []domain.LegLocation, from, to int) []domain.LegLocation {
	next := append([]domain.LegLocation(nil), selection...)

	if from < 0 || from >= len(next) || to < 0 || to >= len(next) || from == to {
		return next
	}

	moved := next[from]
	next = append(next[:from], next[from+1:]...)

	tail := append([]domain.LegLocation(nil), next[to:]...)
	next = append(next[:to], moved)
	next = append(next, tail...)
	return next
}
