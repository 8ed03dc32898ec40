package ports

import (
	"context"

	"carrier-dispatch-service/internal/domain"
)

// Port: read-only access to the parent load aggregate the engine assigns
// against (its canonical stops and rate).
type LoadRepository interface {
	GetLoad(ctx context.Context, loadID string) (*domain.Load, error)
}
