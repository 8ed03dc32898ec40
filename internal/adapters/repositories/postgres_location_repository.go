package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrier-dispatch-service/internal/domain"
)

// Postgres-backed implementation of the LocationRepository port.
type PostgresLocationRepository struct{ DB *sql.DB }

func NewPostgresLocationRepository(db *sql.DB) *PostgresLocationRepository {
	return &PostgresLocationRepository{DB: db}
}

// Return address-book locations, newest first.
func (r *PostgresLocationRepository) ListLocations(ctx context.Context, limit int) ([]*domain.Location, error) {
	if r.DB == nil {
		return nil, errors.New("location repository: DB is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, street, city, state, zip
		FROM locations
		ORDER BY created_at DESC, id
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0, limit)
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Street, &l.City, &l.State, &l.Zip); err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locations = append(locations, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}
