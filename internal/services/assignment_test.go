package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"carrier-dispatch-service/internal/adapters/messaging"
	"carrier-dispatch-service/internal/adapters/repositories"
	"carrier-dispatch-service/internal/domain"
)

func fillDraft(t *testing.T, a *Assignment) {
	t.Helper()

	if err := a.SetDrivers([]domain.DriverCharge{charge(t, domain.ChargePerMile, "2.00")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := a.SetLocations([]domain.LegLocation{
		domain.FromLoadStop(domain.LoadStop{ID: "s-ship", Type: domain.StopShipper, Name: "Shipper"}),
		domain.FromLoadStop(domain.LoadStop{ID: "s-recv", Type: domain.StopReceiver, Name: "Receiver"}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.SetSchedule(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), "07:45"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubmitCreatesLeg(t *testing.T) {
	store := repositories.NewMockRouteLegStore()
	events := messaging.NewMockEventPublisher()

	a := NewAssignment(store, events, "load-1")
	fillDraft(t, a)

	route, err := a.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.State() != domain.StateCommitted {
		t.Fatalf("state = %s, want COMMITTED", a.State())
	}
	if len(route.Legs) != 1 {
		t.Fatalf("expected 1 leg, got %d", len(route.Legs))
	}
	if store.CallCount != 1 {
		t.Fatalf("store writes = %d, want 1", store.CallCount)
	}
	if len(events.Published()) != 0 {
		t.Fatal("no events expected when SendSMS is false")
	}
}

func TestSubmitPublishesWhenSMSRequested(t *testing.T) {
	store := repositories.NewMockRouteLegStore()
	store.Drivers = map[string]*domain.Driver{
		"drv-1": {ID: "drv-1", Name: "Sam Ortega", Phone: "+16025550134"},
	}
	events := messaging.NewMockEventPublisher()

	a := NewAssignment(store, events, "load-1")
	fillDraft(t, a)
	if err := a.SetSendSMS(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := a.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	published := events.Published()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	if published[0].DriverID != "drv-1" || published[0].DriverPhone != "+16025550134" {
		t.Fatalf("event = %+v", published[0])
	}
	if published[0].LoadID != "load-1" || published[0].LegID == "" {
		t.Fatalf("event missing leg/load ids: %+v", published[0])
	}
}

func TestSubmitPublishFailureKeepsCommit(t *testing.T) {
	store := repositories.NewMockRouteLegStore()
	events := messaging.NewMockEventPublisher()
	events.Err = errors.New("broker down")

	a := NewAssignment(store, events, "load-1")
	fillDraft(t, a)
	if err := a.SetSendSMS(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	route, err := a.Submit(context.Background())
	if err != nil {
		t.Fatalf("publish failure must not fail the submit: %v", err)
	}
	if route == nil || a.State() != domain.StateCommitted {
		t.Fatalf("commit should stand, state = %s", a.State())
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	store := repositories.NewMockRouteLegStore()
	a := NewAssignment(store, messaging.NewMockEventPublisher(), "load-1")

	_, err := a.Submit(context.Background())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.CallCount != 0 {
		t.Fatalf("store writes = %d, want 0 before validation passes", store.CallCount)
	}
	if a.State() != domain.StateFailed {
		t.Fatalf("state = %s, want FAILED", a.State())
	}

	// The next edit re-enters Draft.
	fillDraft(t, a)
	if a.State() != domain.StateDraft {
		t.Fatalf("state after edit = %s, want DRAFT", a.State())
	}
}

func TestSubmitPersistenceFailure(t *testing.T) {
	store := repositories.NewMockRouteLegStore()
	store.CreateErr = errors.New("connection reset")

	a := NewAssignment(store, messaging.NewMockEventPublisher(), "load-1")
	fillDraft(t, a)

	_, err := a.Submit(context.Background())
	var perr *domain.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	// Draft survives untouched and the session accepts a retry.
	if a.State() != domain.StateDraft {
		t.Fatalf("state = %s, want DRAFT", a.State())
	}
	if got := a.Draft(); len(got.Drivers) != 1 || len(got.Locations) != 2 {
		t.Fatalf("draft lost on failure: %+v", got)
	}

	store.CreateErr = nil
	if _, err := a.Submit(context.Background()); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
}

func TestSubmitTwiceConcurrently(t *testing.T) {
	store := repositories.NewMockRouteLegStore()
	store.Delay = 50 * time.Millisecond

	a := NewAssignment(store, messaging.NewMockEventPublisher(), "load-1")
	fillDraft(t, a)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inFlight int
		commits  int
	)

	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Submit(context.Background())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				commits++
			case errors.Is(err, domain.ErrSubmitInFlight):
				inFlight++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if commits != 1 || inFlight != 1 {
		t.Fatalf("commits=%d inFlight=%d, want exactly one of each", commits, inFlight)
	}
	if store.CallCount != 1 {
		t.Fatalf("store writes = %d, want exactly 1", store.CallCount)
	}
}

func TestSubmitAfterCommitRejected(t *testing.T) {
	store := repositories.NewMockRouteLegStore()
	a := NewAssignment(store, messaging.NewMockEventPublisher(), "load-1")
	fillDraft(t, a)

	if _, err := a.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := a.Submit(context.Background()); err == nil {
		t.Fatal("second submit after commit should be rejected")
	}
	if err := a.SetInstructions("too late"); err == nil {
		t.Fatal("edits after commit should be rejected")
	}
	if store.CallCount != 1 {
		t.Fatalf("store writes = %d, want 1", store.CallCount)
	}
}

func TestEditAssignmentUpdatesExistingLeg(t *testing.T) {
	store := repositories.NewMockRouteLegStore()
	events := messaging.NewMockEventPublisher()

	// Seed a committed leg through a create session.
	first := NewAssignment(store, events, "load-1")
	fillDraft(t, first)
	route, err := first.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	leg := route.Legs[0]

	// Edit it: hydrate a new session from the persisted leg.
	second := EditAssignment(store, events, "load-1", leg)
	if got := second.Draft(); len(got.Drivers) != 1 || len(got.Locations) != 2 {
		t.Fatalf("hydrated draft = %+v", got)
	}

	if err := second.SetInstructions("gate code 4412"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated, err := second.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.Legs) != 1 {
		t.Fatalf("update must not add a leg, got %d", len(updated.Legs))
	}
	if updated.Legs[0].ID != leg.ID {
		t.Fatalf("leg id changed: %s vs %s", updated.Legs[0].ID, leg.ID)
	}
	if updated.Legs[0].DriverInstructions != "gate code 4412" {
		t.Fatalf("instructions = %q", updated.Legs[0].DriverInstructions)
	}
	if store.CallCount != 2 {
		t.Fatalf("store writes = %d, want 2", store.CallCount)
	}
}

func TestDraftSnapshotIsolation(t *testing.T) {
	a := NewAssignment(repositories.NewMockRouteLegStore(), messaging.NewMockEventPublisher(), "load-1")
	fillDraft(t, a)

	snap := a.Draft()
	snap.Drivers[0].DriverID = "mutated"
	snap.Locations = nil

	if got := a.Draft(); got.Drivers[0].DriverID != "drv-1" || len(got.Locations) != 2 {
		t.Fatalf("session draft mutated through snapshot: %+v", got)
	}
}
