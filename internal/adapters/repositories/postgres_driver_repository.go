package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrier-dispatch-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Postgres-backed implementation of the DriverRepository port.
type PostgresDriverRepository struct{ DB *sql.DB }

func NewPostgresDriverRepository(db *sql.DB) *PostgresDriverRepository {
	return &PostgresDriverRepository{DB: db}
}

const driverColumns = `
	id, name, phone, default_charge_type,
	per_mile_rate, per_hour_rate, default_fixed_pay, take_home_percent
`

// Return all drivers in the roster, ordered by name.
func (r *PostgresDriverRepository) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	if r.DB == nil {
		return nil, errors.New("driver repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0, 32)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("list drivers: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: row iteration: %w", err)
	}

	return drivers, nil
}

// Return one driver by id.
func (r *PostgresDriverRepository) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if r.DB == nil {
		return nil, errors.New("driver repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, driverID)
	d, err := scanDriver(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get driver: driver %q not found", driverID)
	}
	if err != nil {
		return nil, fmt.Errorf("get driver %q: %w", driverID, err)
	}
	return d, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var (
		d                            domain.Driver
		chargeType                   sql.NullString
		perMile, perHour, fixed, pct sql.NullString
	)
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &chargeType, &perMile, &perHour, &fixed, &pct)
	if err != nil {
		return nil, err
	}

	if chargeType.Valid {
		ct, err := domain.ParseChargeType(chargeType.String)
		if err != nil {
			return nil, fmt.Errorf("driver %q: %w", d.ID, err)
		}
		d.DefaultChargeType = &ct
	}

	assign := func(dst **decimal.Decimal, src sql.NullString, field string) error {
		if !src.Valid {
			return nil
		}
		v, err := decimal.NewFromString(src.String)
		if err != nil {
			return fmt.Errorf("driver %q: parse %s: %w", d.ID, field, err)
		}
		*dst = &v
		return nil
	}

	if err := assign(&d.PerMileRate, perMile, "per_mile_rate"); err != nil {
		return nil, err
	}
	if err := assign(&d.PerHourRate, perHour, "per_hour_rate"); err != nil {
		return nil, err
	}
	if err := assign(&d.DefaultFixedPay, fixed, "default_fixed_pay"); err != nil {
		return nil, err
	}
	if err := assign(&d.TakeHomePercent, pct, "take_home_percent"); err != nil {
		return nil, err
	}

	return &d, nil
}
