package messaging

import (
	"context"
	"sync"

	"carrier-dispatch-service/internal/ports"
)

// In-memory EventPublisher for tests. Records published events in order;
// Err, when set, fails every publish.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []ports.AssignmentCommitted
	Err    error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishAssignmentCommitted(ctx context.Context, event ports.AssignmentCommitted) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, event)
	return nil
}

// Published returns a copy of the recorded events.
func (m *MockEventPublisher) Published() []ports.AssignmentCommitted {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.AssignmentCommitted(nil), m.Events...)
}
