package ports

import (
	"context"

	"carrier-dispatch-service/internal/domain"
)

// Port: read-only access to the driver roster.
type DriverRepository interface {
	// Return all drivers available for assignment.
	ListDrivers(ctx context.Context) ([]*domain.Driver, error)

	// Return one driver by id.
	GetDriver(ctx context.Context, driverID string) (*domain.Driver, error)
}
