package ports

import (
	"context"

	"carrier-dispatch-service/internal/domain"
)

// Port: persistence boundary for route legs. Both operations return the
// updated Route aggregate with legs ordered by scheduled date and time;
// the server's copy is authoritative once a submit succeeds.
type RouteLegStore interface {
	// Persist a new leg on the load's route, creating the route if the
	// load has none yet.
	CreateLeg(ctx context.Context, loadID string, draft *domain.RouteLegDraft) (*domain.Route, error)

	// Replace an existing leg's drivers, stops, and schedule.
	UpdateLeg(ctx context.Context, legID string, loadID string, draft *domain.RouteLegDraft) (*domain.Route, error)
}
