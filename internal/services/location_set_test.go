package services

import (
	"testing"

	"carrier-dispatch-service/internal/domain"
)

func stop(id, name string, stopType domain.StopType) domain.LoadStop {
	return domain.LoadStop{ID: id, Name: name, Type: stopType}
}

func testLoadStops() []domain.LoadStop {
	return []domain.LoadStop{
		stop("s-ship", "Shipper Dock", domain.StopShipper),
		stop("s-mid", "Cross Dock", domain.StopStop),
		stop("s-recv", "Receiver Yard", domain.StopReceiver),
	}
}

func ids(locations []domain.LegLocation) []string {
	out := make([]string, 0, len(locations))
	for _, l := range locations {
		out = append(out, l.LocationID())
	}
	return out
}

func sameIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildCandidateSetOrder(t *testing.T) {
	existing := []domain.LegLocation{
		domain.FromLocation(domain.Location{ID: "loc-yard", Name: "Drop Yard"}),
	}

	got := BuildCandidateSet(testLoadStops(), existing)

	if !sameIDs(ids(got), "s-ship", "s-mid", "s-recv", "loc-yard") {
		t.Fatalf("candidate order = %v", ids(got))
	}
}

func TestBuildCandidateSetDedup(t *testing.T) {
	// A previously selected canonical stop must not appear twice, and the
	// canonical occurrence wins its position.
	existing := []domain.LegLocation{
		domain.FromLoadStop(stop("s-mid", "Cross Dock", domain.StopStop)),
		domain.FromLocation(domain.Location{ID: "loc-yard", Name: "Drop Yard"}),
	}

	got := BuildCandidateSet(testLoadStops(), existing)

	seen := map[string]int{}
	for _, id := range ids(got) {
		seen[id]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Fatalf("id %q appears %d times", id, n)
		}
	}
	if !sameIDs(ids(got), "s-ship", "s-mid", "s-recv", "loc-yard") {
		t.Fatalf("candidate order = %v", ids(got))
	}
}

func TestBuildCandidateSetDeterministic(t *testing.T) {
	existing := []domain.LegLocation{
		domain.FromLocation(domain.Location{ID: "loc-a", Name: "A"}),
		domain.FromLocation(domain.Location{ID: "loc-b", Name: "B"}),
	}

	first := ids(BuildCandidateSet(testLoadStops(), existing))
	second := ids(BuildCandidateSet(testLoadStops(), existing))

	if !sameIDs(first, second...) {
		t.Fatalf("rebuild changed order: %v vs %v", first, second)
	}
}

func TestToggleSelectionCandidateOrder(t *testing.T) {
	candidates := BuildCandidateSet(testLoadStops(), nil)

	// Select receiver first, then shipper: order must still be candidate
	// order (shipper before receiver), not click order.
	sel := ToggleSelection(nil, candidates, candidates[2], true)
	sel = ToggleSelection(sel, candidates, candidates[0], true)

	if !sameIDs(ids(sel), "s-ship", "s-recv") {
		t.Fatalf("selection order = %v, want candidate order", ids(sel))
	}
}

func TestToggleSelectionRoundTrip(t *testing.T) {
	candidates := BuildCandidateSet(testLoadStops(), nil)

	base := ToggleSelection(nil, candidates, candidates[0], true)
	base = ToggleSelection(base, candidates, candidates[2], true)

	toggled := ToggleSelection(base, candidates, candidates[1], true)
	restored := ToggleSelection(toggled, candidates, candidates[1], false)

	if !sameIDs(ids(restored), ids(base)...) {
		t.Fatalf("round trip changed selection: %v vs %v", ids(restored), ids(base))
	}
}

func TestReorder(t *testing.T) {
	candidates := BuildCandidateSet(testLoadStops(), nil)
	sel := append([]domain.LegLocation(nil), candidates...)

	got := Reorder(sel, 1, "up")
	if !sameIDs(ids(got), "s-mid", "s-ship", "s-recv") {
		t.Fatalf("after up: %v", ids(got))
	}

	got = Reorder(got, 0, "down")
	if !sameIDs(ids(got), "s-ship", "s-mid", "s-recv") {
		t.Fatalf("after down: %v", ids(got))
	}
}

func TestReorderBoundaries(t *testing.T) {
	candidates := BuildCandidateSet(testLoadStops(), nil)

	got := Reorder(candidates, 0, "up")
	if !sameIDs(ids(got), ids(candidates)...) {
		t.Fatalf("up at index 0 should be a no-op, got %v", ids(got))
	}

	got = Reorder(candidates, len(candidates)-1, "down")
	if !sameIDs(ids(got), ids(candidates)...) {
		t.Fatalf("down at last index should be a no-op, got %v", ids(got))
	}

	got = Reorder(candidates, 99, "up")
	if !sameIDs(ids(got), ids(candidates)...) {
		t.Fatalf("out-of-range index should be a no-op, got %v", ids(got))
	}
}

func TestMoveStop(t *testing.T) {
	candidates := BuildCandidateSet(testLoadStops(), []domain.LegLocation{
		domain.FromLocation(domain.Location{ID: "loc-yard", Name: "Drop Yard"}),
	})

	got := MoveStop(candidates, 3, 0)
	if !sameIDs(ids(got), "loc-yard", "s-ship", "s-mid", "s-recv") {
		t.Fatalf("after move 3->0: %v", ids(got))
	}

	got = MoveStop(got, 0, 2)
	if !sameIDs(ids(got), "s-ship", "s-mid", "loc-yard", "s-recv") {
		t.Fatalf("after move 0->2: %v", ids(got))
	}

	got = MoveStop(got, 1, 1)
	if !sameIDs(ids(got), "s-ship", "s-mid", "loc-yard", "s-recv") {
		t.Fatalf("move to same index should be a no-op: %v", ids(got))
	}

	got = MoveStop(got, -1, 2)
	if !sameIDs(ids(got), "s-ship", "s-mid", "loc-yard", "s-recv") {
		t.Fatalf("out-of-range move should be a no-op: %v", ids(got))
	}
}
