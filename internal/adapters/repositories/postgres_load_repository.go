package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrier-dispatch-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Postgres-backed implementation of the LoadRepository port.
type PostgresLoadRepository struct{ DB *sql.DB }

func NewPostgresLoadRepository(db *sql.DB) *PostgresLoadRepository {
	return &PostgresLoadRepository{DB: db}
}

// Return the load with its canonical stops: shipper, intermediate stops
// in position order, receiver.
func (r *PostgresLoadRepository) GetLoad(ctx context.Context, loadID string) (*domain.Load, error) {
	if r.DB == nil {
		return nil, errors.New("load repository: DB is nil")
	}

	var (
		load domain.Load
		rate string
	)
	err := r.DB.QueryRowContext(ctx, `SELECT id, ref_num, rate FROM loads WHERE id = $1`, loadID).
		Scan(&load.ID, &load.RefNum, &rate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get load: load %q not found", loadID)
	}
	if err != nil {
		return nil, fmt.Errorf("get load %q: %w", loadID, err)
	}

	load.Rate, err = decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("get load %q: parse rate: %w", loadID, err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, stop_type, name, street, city, state, zip, stop_date, stop_time
		FROM load_stops
		WHERE load_id = $1
		ORDER BY position, id`,
		loadID,
	)
	if err != nil {
		return nil, fmt.Errorf("get load %q: query stops: %w", loadID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			stop domain.LoadStop
			date sql.NullTime
		)
		err := rows.Scan(&stop.ID, &stop.Type, &stop.Name, &stop.Street, &stop.City, &stop.State, &stop.Zip, &date, &stop.Time)
		if err != nil {
			return nil, fmt.Errorf("get load %q: scan stop: %w", loadID, err)
		}
		if date.Valid {
			stop.Date = date.Time
		}

		switch stop.Type {
		case domain.StopShipper:
			load.Shipper = stop
		case domain.StopReceiver:
			load.Receiver = stop
		default:
			load.Stops = append(load.Stops, stop)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get load %q: stop iteration: %w", loadID, err)
	}

	return &load, nil
}
