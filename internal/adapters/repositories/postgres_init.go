package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Initialize the Postgres schema for loads, routes, and assignments.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		default_charge_type TEXT,
		per_mile_rate NUMERIC,
		per_hour_rate NUMERIC,
		default_fixed_pay NUMERIC,
		take_home_percent NUMERIC
	);
	`

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		street TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createLoadsQuery := `
	CREATE TABLE IF NOT EXISTS loads (
		id TEXT PRIMARY KEY,
		ref_num TEXT NOT NULL DEFAULT '',
		rate NUMERIC NOT NULL DEFAULT 0
	);
	`

	createLoadStopsQuery := `
	CREATE TABLE IF NOT EXISTS load_stops (
		id TEXT PRIMARY KEY,
		load_id TEXT NOT NULL REFERENCES loads(id),
		stop_type TEXT NOT NULL,
		name TEXT NOT NULL,
		street TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip TEXT NOT NULL DEFAULT '',
		stop_date TIMESTAMPTZ,
		stop_time TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		load_id TEXT NOT NULL UNIQUE REFERENCES loads(id)
	);
	`

	createRouteLegsQuery := `
	CREATE TABLE IF NOT EXISTS route_legs (
		id TEXT PRIMARY KEY,
		route_id TEXT NOT NULL REFERENCES routes(id),
		scheduled_date TIMESTAMPTZ NOT NULL,
		scheduled_time TEXT NOT NULL,
		driver_instructions TEXT NOT NULL DEFAULT ''
	);
	`

	createAssignmentsQuery := `
	CREATE TABLE IF NOT EXISTS driver_assignments (
		leg_id TEXT NOT NULL REFERENCES route_legs(id) ON DELETE CASCADE,
		driver_id TEXT NOT NULL REFERENCES drivers(id),
		charge_type TEXT,
		charge_value NUMERIC,
		assigned_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (leg_id, driver_id)
	);
	`

	createLegLocationsQuery := `
	CREATE TABLE IF NOT EXISTS route_leg_locations (
		leg_id TEXT NOT NULL REFERENCES route_legs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		load_stop_id TEXT REFERENCES load_stops(id),
		location_id TEXT REFERENCES locations(id),
		PRIMARY KEY (leg_id, position),
		CHECK (
			(load_stop_id IS NOT NULL AND location_id IS NULL) OR
			(load_stop_id IS NULL AND location_id IS NOT NULL)
		)
	);
	`

	createLegIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_legs_route_schedule
	ON route_legs(route_id, scheduled_date, scheduled_time);
	`

	statements := []string{
		createDriversQuery,
		createLocationsQuery,
		createLoadsQuery,
		createLoadStopsQuery,
		createRoutesQuery,
		createRouteLegsQuery,
		createAssignmentsQuery,
		createLegLocationsQuery,
		createLegIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DriverSeed struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	DefaultChargeType *string `json:"default_charge_type"`
	PerMileRate       *string `json:"per_mile_rate"`
	PerHourRate       *string `json:"per_hour_rate"`
	DefaultFixedPay   *string `json:"default_fixed_pay"`
	TakeHomePercent   *string `json:"take_home_percent"`
}

type LocationSeed struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type SeedFile struct {
	Drivers   []DriverSeed   `json:"drivers"`
	Locations []LocationSeed `json:"locations"`
}

// Populate the database with demo drivers and address-book locations.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("seed: parse %q: %w", jsonPath, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	driverQuery := `
	INSERT INTO drivers (id, name, phone, default_charge_type, per_mile_rate, per_hour_rate, default_fixed_pay, take_home_percent)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO NOTHING;
	`
	for _, d := range seed.Drivers {
		_, err := tx.Exec(driverQuery,
			d.ID, d.Name, d.Phone, d.DefaultChargeType,
			d.PerMileRate, d.PerHourRate, d.DefaultFixedPay, d.TakeHomePercent,
		)
		if err != nil {
			return fmt.Errorf("seed: insert driver %q: %w", d.ID, err)
		}
	}

	locationQuery := `
	INSERT INTO locations (id, name, street, city, state, zip)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO NOTHING;
	`
	for _, l := range seed.Locations {
		if _, err := tx.Exec(locationQuery, l.ID, l.Name, l.Street, l.City, l.State, l.Zip); err != nil {
			return fmt.Errorf("seed: insert location %q: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
