package ports

import (
	"context"

	"carrier-dispatch-service/internal/domain"
)

// Port: read-only access to the address book.
type LocationRepository interface {
	// Return address-book locations, newest first.
	ListLocations(ctx context.Context, limit int) ([]*domain.Location, error)
}
