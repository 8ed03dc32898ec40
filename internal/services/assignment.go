package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"carrier-dispatch-service/internal/domain"
	"carrier-dispatch-service/internal/ports"
)

// Assignment owns one leg edit/create session: the draft, its lifecycle
// state, and the submit side effects. Each session holds its own draft;
// nothing is shared across sessions.
//
// All edits go through methods here so the draft's uniqueness and
// ordering invariants cannot be bypassed. Submit performs the single
// store round trip; notification is decoupled into an event published
// after the commit and consumed by a worker.
type Assignment struct {
	store  ports.RouteLegStore
	events ports.EventPublisher

	loadID string
	legID  string

	mu    sync.Mutex
	state domain.DraftState
	draft *domain.RouteLegDraft
}

// NewAssignment starts a session for a brand-new leg on the load.
func NewAssignment(store ports.RouteLegStore, events ports.EventPublisher, loadID string) *Assignment {
	return &Assignment{
		store:  store,
		events: events,
		loadID: loadID,
		state:  domain.StateDraft,
		draft:  domain.NewDraft(),
	}
}

// EditAssignment starts a session editing an existing persisted leg.
func EditAssignment(store ports.RouteLegStore, events ports.EventPublisher, loadID string, leg domain.RouteLeg) *Assignment {
	return &Assignment{
		store:  store,
		events: events,
		loadID: loadID,
		legID:  leg.ID,
		state:  domain.StateDraft,
		draft:  domain.DraftFromLeg(leg),
	}
}

// RestoreAssignment resumes a session from a previously saved draft.
func RestoreAssignment(store ports.RouteLegStore, events ports.EventPublisher, loadID, legID string, draft *domain.RouteLegDraft) *Assignment {
	if draft == nil {
		draft = domain.NewDraft()
	}
	return &Assignment{
		store:  store,
		events: events,
		loadID: loadID,
		legID:  legID,
		state:  domain.StateDraft,
		draft:  draft,
	}
}

// State returns the session's current lifecycle state.
func (a *Assignment) State() domain.DraftState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Draft returns a snapshot of the working draft. Mutating the snapshot
// does not affect the session.
func (a *Assignment) Draft() *domain.RouteLegDraft {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.draft.Clone()
}

// edit applies a mutation under the session lock. Edits are rejected
// while a submit is in flight or after a commit; an edit on a Failed
// session re-enters Draft.
func (a *Assignment) edit(apply func(d *domain.RouteLegDraft)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case domain.StateSubmitting:
		return domain.ErrSubmitInFlight
	case domain.StateCommitted:
		return errors.New("assignment already committed")
	}

	apply(a.draft)
	a.state = domain.StateDraft
	return nil
}

// SetDrivers replaces the driver charges on the draft.
func (a *Assignment) SetDrivers(charges []domain.DriverCharge) error {
	return a.edit(func(d *domain.RouteLegDraft) { d.SetDrivers(charges) })
}

// SetLocations replaces the ordered stop selection on the draft.
func (a *Assignment) SetLocations(locations []domain.LegLocation) error {
	return a.edit(func(d *domain.RouteLegDraft) { d.SetLocations(locations) })
}

// SetSchedule sets the leg's scheduled date and HH:MM time.
func (a *Assignment) SetSchedule(date time.Time, clock string) error {
	return a.edit(func(d *domain.RouteLegDraft) {
		d.ScheduledDate = date
		d.ScheduledTime = clock
	})
}

// SetInstructions sets the free-text driver instructions.
func (a *Assignment) SetInstructions(text string) error {
	return a.edit(func(d *domain.RouteLegDraft) { d.DriverInstructions = text })
}

// SetSendSMS flags whether drivers are notified after the commit.
func (a *Assignment) SetSendSMS(send bool) error {
	return a.edit(func(d *domain.RouteLegDraft) { d.SendSMS = send })
}

// Validate runs the submission checks against the current draft.
// A failed validation parks the session in Failed until the next edit.
func (a *Assignment) Validate() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.validateLocked()
}

func (a *Assignment) validateLocked() error {
	if a.state == domain.StateSubmitting {
		return domain.ErrSubmitInFlight
	}

	a.state = domain.StateValidating
	if err := ValidateDraft(a.draft); err != nil {
		a.state = domain.StateFailed
		return err
	}

	a.state = domain.StateDraft
	return nil
}

// Submit validates the draft and persists it through the store, creating
// or updating depending on how the session was opened. Exactly one store
// write happens per submission: a second Submit while one is in flight
// is rejected with ErrSubmitInFlight.
//
// On success the session is Committed and, when SendSMS is set, one
// AssignmentCommitted event is published per assigned driver. Publishing
// failures are logged and never revert the commit. A store failure
// returns the session to Draft with the draft intact, so the user may
// edit and resubmit.
func (a *Assignment) Submit(ctx context.Context) (*domain.Route, error) {
	a.mu.Lock()
	if a.state == domain.StateSubmitting {
		a.mu.Unlock()
		return nil, domain.ErrSubmitInFlight
	}
	if a.state == domain.StateCommitted {
		a.mu.Unlock()
		return nil, errors.New("assignment already committed")
	}

	if err := a.validateLocked(); err != nil {
		a.mu.Unlock()
		return nil, err
	}

	a.state = domain.StateSubmitting
	snapshot := a.draft.Clone()
	legID := a.legID
	a.mu.Unlock()

	var (
		route *domain.Route
		err   error
	)
	if legID != "" {
		route, err = a.store.UpdateLeg(ctx, legID, a.loadID, snapshot)
	} else {
		route, err = a.store.CreateLeg(ctx, a.loadID, snapshot)
	}

	a.mu.Lock()
	if err != nil {
		a.state = domain.StateDraft
		a.mu.Unlock()
		return nil, &domain.PersistenceError{Op: storeOp(legID), Err: err}
	}
	a.state = domain.StateCommitted
	a.mu.Unlock()

	if snapshot.SendSMS {
		a.publishCommitted(ctx, route, legID, snapshot)
	}

	return route, nil
}

func storeOp(legID string) string {
	if legID != "" {
		return "update leg"
	}
	return "create leg"
}

// publishCommitted emits one event per assigned driver on the committed
// leg. Best effort: failures are logged, not returned.
func (a *Assignment) publishCommitted(ctx context.Context, route *domain.Route, legID string, snapshot *domain.RouteLegDraft) {
	leg := committedLeg(route, legID, snapshot)
	if leg == nil {
		log.Printf("assignment: committed leg not found in route id=%s", route.ID)
		return
	}

	for _, da := range leg.DriverAssignments {
		event := ports.AssignmentCommitted{
			LegID:         leg.ID,
			LoadID:        route.LoadID,
			DriverID:      da.DriverID,
			ScheduledDate: leg.ScheduledDate,
			ScheduledTime: leg.ScheduledTime,
		}
		if da.Driver != nil {
			event.DriverName = da.Driver.Name
			event.DriverPhone = da.Driver.Phone
		}

		if err := a.events.PublishAssignmentCommitted(ctx, event); err != nil {
			nerr := &domain.NotificationError{DriverID: da.DriverID, Err: err}
			log.Printf("assignment: %v (leg committed, notification skipped)", nerr)
		}
	}
}

// committedLeg locates the leg this session just wrote inside the
// returned route aggregate: by id for updates, or by matching schedule
// and driver set for creates.
func committedLeg(route *domain.Route, legID string, snapshot *domain.RouteLegDraft) *domain.RouteLeg {
	if route == nil {
		return nil
	}

	if legID != "" {
		for i := range route.Legs {
			if route.Legs[i].ID == legID {
				return &route.Legs[i]
			}
		}
		return nil
	}

	want := make(map[string]struct{}, len(snapshot.Drivers))
	for _, c := range snapshot.Drivers {
		want[c.DriverID] = struct{}{}
	}

	for i := len(route.Legs) - 1; i >= 0; i-- {
		leg := &route.Legs[i]
		if !leg.ScheduledDate.Equal(snapshot.ScheduledDate) || leg.ScheduledTime != snapshot.ScheduledTime {
			continue
		}
		if len(leg.DriverAssignments) != len(want) {
			continue
		}
		match := true
		for _, da := range leg.DriverAssignments {
			if _, ok := want[da.DriverID]; !ok {
				match = false
				break
			}
		}
		if match {
			return leg
		}
	}
	return nil
}

// SessionKey identifies a draft session in the draft store. An empty
// legID means a new-leg session on the load.
func SessionKey(loadID, legID string) string {
	if legID != "" {
		return fmt.Sprintf("load:%s:leg:%s", loadID, legID)
	}
	return fmt.Sprintf("load:%s:new", loadID)
}

// SessionKey identifies this session in the draft store.
func (a *Assignment) SessionKey() string {
	return SessionKey(a.loadID, a.legID)
}
