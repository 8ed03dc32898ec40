package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"carrier-dispatch-service/internal/domain"
)

// In-memory RouteLegStore for tests. Optional hooks let tests inject
// failures and observe call timing; CallCount tracks total writes.
type MockRouteLegStore struct {
	mu        sync.Mutex
	routes    map[string]*domain.Route
	nextID    int
	CallCount int

	// CreateErr/UpdateErr, when set, fail the matching operation.
	CreateErr error
	UpdateErr error

	// Delay, when set, sleeps before completing a write. Used to widen
	// the submit-in-flight window in concurrency tests.
	Delay time.Duration

	// Drivers, when set, is used to attach driver records to returned
	// assignments the way the real store joins the drivers table.
	Drivers map[string]*domain.Driver
}

func NewMockRouteLegStore() *MockRouteLegStore {
	return &MockRouteLegStore{routes: make(map[string]*domain.Route)}
}

func (m *MockRouteLegStore) CreateLeg(ctx context.Context, loadID string, draft *domain.RouteLegDraft) (*domain.Route, error) {
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++

	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	route, ok := m.routes[loadID]
	if !ok {
		m.nextID++
		route = &domain.Route{ID: fmt.Sprintf("route-%d", m.nextID), LoadID: loadID}
		m.routes[loadID] = route
	}

	m.nextID++
	leg := m.legFromDraft(fmt.Sprintf("leg-%d", m.nextID), draft)
	route.Legs = append(route.Legs, leg)

	return m.snapshot(route), nil
}

func (m *MockRouteLegStore) UpdateLeg(ctx context.Context, legID string, loadID string, draft *domain.RouteLegDraft) (*domain.Route, error) {
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++

	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}

	route, ok := m.routes[loadID]
	if !ok {
		return nil, fmt.Errorf("mock store: no route for load %q", loadID)
	}

	for i := range route.Legs {
		if route.Legs[i].ID == legID {
			route.Legs[i] = m.legFromDraft(legID, draft)
			return m.snapshot(route), nil
		}
	}
	return nil, fmt.Errorf("mock store: leg %q not found", legID)
}

func (m *MockRouteLegStore) legFromDraft(legID string, draft *domain.RouteLegDraft) domain.RouteLeg {
	leg := domain.RouteLeg{
		ID:                 legID,
		ScheduledDate:      draft.ScheduledDate,
		ScheduledTime:      draft.ScheduledTime,
		DriverInstructions: draft.DriverInstructions,
		Locations:          append([]domain.LegLocation(nil), draft.Locations...),
	}
	for _, c := range draft.Drivers {
		da := domain.DriverAssignment{
			DriverID:    c.DriverID,
			ChargeType:  c.ChargeType,
			ChargeValue: c.ChargeValue,
			AssignedAt:  time.Now(),
		}
		if d, ok := m.Drivers[c.DriverID]; ok {
			da.Driver = d
		}
		leg.DriverAssignments = append(leg.DriverAssignments, da)
	}
	return leg
}

func (m *MockRouteLegStore) snapshot(route *domain.Route) *domain.Route {
	cp := *route
	cp.Legs = append([]domain.RouteLeg(nil), route.Legs...)
	return &cp
}
