package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrier-dispatch-service/internal/domain"
	"carrier-dispatch-service/internal/platform/obs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Postgres-backed implementation of the RouteLegStore port.
//
// Writes run in a single transaction per operation; reads re-load the
// whole Route aggregate afterwards so callers always get the server's
// authoritative ordering (legs by scheduled date/time, stops by position).
type PostgresRouteLegStore struct{ DB *sql.DB }

func NewPostgresRouteLegStore(db *sql.DB) *PostgresRouteLegStore {
	return &PostgresRouteLegStore{DB: db}
}

// Persist a new leg on the load's route, creating the route row first if
// the load has none yet.
func (s *PostgresRouteLegStore) CreateLeg(ctx context.Context, loadID string, draft *domain.RouteLegDraft) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "store.CreateLeg")(&err)

	if s.DB == nil {
		return nil, errors.New("route leg store: DB is nil")
	}
	if draft == nil {
		return nil, errors.New("create leg: draft is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create leg: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var routeID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM routes WHERE load_id = $1`, loadID).Scan(&routeID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		routeID = uuid.NewString()
		if _, err := tx.ExecContext(ctx, `INSERT INTO routes (id, load_id) VALUES ($1, $2)`, routeID, loadID); err != nil {
			return nil, fmt.Errorf("create leg: insert route for load %q: %w", loadID, err)
		}
	case err != nil:
		return nil, fmt.Errorf("create leg: find route for load %q: %w", loadID, err)
	}

	legID := uuid.NewString()
	if err := insertLeg(ctx, tx, legID, routeID, draft); err != nil {
		return nil, fmt.Errorf("create leg: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create leg: commit tx: %w", err)
	}

	return s.loadRoute(ctx, routeID)
}

// Replace an existing leg's drivers, stops, and schedule.
func (s *PostgresRouteLegStore) UpdateLeg(ctx context.Context, legID string, loadID string, draft *domain.RouteLegDraft) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "store.UpdateLeg")(&err)

	if s.DB == nil {
		return nil, errors.New("route leg store: DB is nil")
	}
	if draft == nil {
		return nil, errors.New("update leg: draft is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update leg: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var routeID string
	err = tx.QueryRowContext(ctx, `
		SELECT r.id
		FROM route_legs l
		JOIN routes r ON r.id = l.route_id
		WHERE l.id = $1 AND r.load_id = $2`,
		legID, loadID,
	).Scan(&routeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update leg: leg %q not found on load %q", legID, loadID)
	}
	if err != nil {
		return nil, fmt.Errorf("update leg: find leg %q: %w", legID, err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE route_legs
		SET scheduled_date = $2, scheduled_time = $3, driver_instructions = $4
		WHERE id = $1`,
		legID, draft.ScheduledDate, draft.ScheduledTime, draft.DriverInstructions,
	)
	if err != nil {
		return nil, fmt.Errorf("update leg: update leg row %q: %w", legID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("update leg: leg %q not found", legID)
	}

	// Full replace of child rows keeps positions and driver sets exact.
	if _, err := tx.ExecContext(ctx, `DELETE FROM driver_assignments WHERE leg_id = $1`, legID); err != nil {
		return nil, fmt.Errorf("update leg: clear assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM route_leg_locations WHERE leg_id = $1`, legID); err != nil {
		return nil, fmt.Errorf("update leg: clear locations: %w", err)
	}

	if err := insertChildren(ctx, tx, legID, draft); err != nil {
		return nil, fmt.Errorf("update leg: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update leg: commit tx: %w", err)
	}

	return s.loadRoute(ctx, routeID)
}

func insertLeg(ctx context.Context, tx *sql.Tx, legID, routeID string, draft *domain.RouteLegDraft) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO route_legs (id, route_id, scheduled_date, scheduled_time, driver_instructions)
		VALUES ($1, $2, $3, $4, $5)`,
		legID, routeID, draft.ScheduledDate, draft.ScheduledTime, draft.DriverInstructions,
	)
	if err != nil {
		return fmt.Errorf("insert leg row: %w", err)
	}

	return insertChildren(ctx, tx, legID, draft)
}

func insertChildren(ctx context.Context, tx *sql.Tx, legID string, draft *domain.RouteLegDraft) error {
	assignQuery := `
	INSERT INTO driver_assignments (leg_id, driver_id, charge_type, charge_value)
	VALUES ($1, $2, $3, $4);
	`
	for _, c := range draft.Drivers {
		var chargeType, chargeValue any
		if c.ChargeType != nil {
			chargeType = string(*c.ChargeType)
		}
		if c.ChargeValue != nil {
			chargeValue = c.ChargeValue.String()
		}
		if _, err := tx.ExecContext(ctx, assignQuery, legID, c.DriverID, chargeType, chargeValue); err != nil {
			return fmt.Errorf("insert assignment for driver %q: %w", c.DriverID, err)
		}
	}

	locationQuery := `
	INSERT INTO route_leg_locations (leg_id, position, load_stop_id, location_id)
	VALUES ($1, $2, $3, $4);
	`
	for i, loc := range draft.Locations {
		var stopID, locationID any
		switch loc.Kind {
		case domain.KindLoadStop:
			stopID = loc.Stop.ID
		case domain.KindLocation:
			locationID = loc.Location.ID
		default:
			return fmt.Errorf("insert leg location #%d: unknown kind %q", i, loc.Kind)
		}
		if _, err := tx.ExecContext(ctx, locationQuery, legID, i, stopID, locationID); err != nil {
			return fmt.Errorf("insert leg location #%d: %w", i, err)
		}
	}

	return nil
}

// loadRoute reads the full Route aggregate back, legs ordered by
// scheduled date then time, stops by stored position.
func (s *PostgresRouteLegStore) loadRoute(ctx context.Context, routeID string) (*domain.Route, error) {
	route := &domain.Route{ID: routeID}

	err := s.DB.QueryRowContext(ctx, `SELECT load_id FROM routes WHERE id = $1`, routeID).Scan(&route.LoadID)
	if err != nil {
		return nil, fmt.Errorf("load route %q: %w", routeID, err)
	}

	legRows, err := s.DB.QueryContext(ctx, `
		SELECT id, scheduled_date, scheduled_time, driver_instructions
		FROM route_legs
		WHERE route_id = $1
		ORDER BY scheduled_date, scheduled_time`,
		routeID,
	)
	if err != nil {
		return nil, fmt.Errorf("load route %q: query legs: %w", routeID, err)
	}
	defer legRows.Close()

	for legRows.Next() {
		var leg domain.RouteLeg
		if err := legRows.Scan(&leg.ID, &leg.ScheduledDate, &leg.ScheduledTime, &leg.DriverInstructions); err != nil {
			return nil, fmt.Errorf("load route %q: scan leg: %w", routeID, err)
		}
		route.Legs = append(route.Legs, leg)
	}
	if err := legRows.Err(); err != nil {
		return nil, fmt.Errorf("load route %q: leg iteration: %w", routeID, err)
	}

	for i := range route.Legs {
		if err := s.loadLegChildren(ctx, &route.Legs[i]); err != nil {
			return nil, fmt.Errorf("load route %q: %w", routeID, err)
		}
	}

	return route, nil
}

func (s *PostgresRouteLegStore) loadLegChildren(ctx context.Context, leg *domain.RouteLeg) error {
	assignRows, err := s.DB.QueryContext(ctx, `
		SELECT a.driver_id, a.charge_type, a.charge_value, a.assigned_at,
		       d.name, d.phone
		FROM driver_assignments a
		JOIN drivers d ON d.id = a.driver_id
		WHERE a.leg_id = $1
		ORDER BY a.assigned_at, a.driver_id`,
		leg.ID,
	)
	if err != nil {
		return fmt.Errorf("leg %q: query assignments: %w", leg.ID, err)
	}
	defer assignRows.Close()

	for assignRows.Next() {
		var (
			da          domain.DriverAssignment
			chargeType  sql.NullString
			chargeValue sql.NullString
			assignedAt  time.Time
			name, phone string
		)
		if err := assignRows.Scan(&da.DriverID, &chargeType, &chargeValue, &assignedAt, &name, &phone); err != nil {
			return fmt.Errorf("leg %q: scan assignment: %w", leg.ID, err)
		}
		da.AssignedAt = assignedAt
		da.Driver = &domain.Driver{ID: da.DriverID, Name: name, Phone: phone}
		if chargeType.Valid {
			ct, err := domain.ParseChargeType(chargeType.String)
			if err != nil {
				return fmt.Errorf("leg %q: %w", leg.ID, err)
			}
			da.ChargeType = &ct
		}
		if chargeValue.Valid {
			v, err := decimal.NewFromString(chargeValue.String)
			if err != nil {
				return fmt.Errorf("leg %q: parse charge value: %w", leg.ID, err)
			}
			da.ChargeValue = &v
		}
		leg.DriverAssignments = append(leg.DriverAssignments, da)
	}
	if err := assignRows.Err(); err != nil {
		return fmt.Errorf("leg %q: assignment iteration: %w", leg.ID, err)
	}

	locRows, err := s.DB.QueryContext(ctx, `
		SELECT ll.load_stop_id, ll.location_id,
		       ls.stop_type, ls.name, ls.street, ls.city, ls.state, ls.zip, ls.stop_date, ls.stop_time,
		       lo.name, lo.street, lo.city, lo.state, lo.zip
		FROM route_leg_locations ll
		LEFT JOIN load_stops ls ON ls.id = ll.load_stop_id
		LEFT JOIN locations lo ON lo.id = ll.location_id
		WHERE ll.leg_id = $1
		ORDER BY ll.position`,
		leg.ID,
	)
	if err != nil {
		return fmt.Errorf("leg %q: query locations: %w", leg.ID, err)
	}
	defer locRows.Close()

	for locRows.Next() {
		var (
			stopID, locationID                            sql.NullString
			stopType, stopName                            sql.NullString
			stopStreet, stopCity, stopState, stopZip      sql.NullString
			stopDate                                      sql.NullTime
			stopTime                                      sql.NullString
			locName, locStreet, locCity, locState, locZip sql.NullString
		)
		err := locRows.Scan(
			&stopID, &locationID,
			&stopType, &stopName, &stopStreet, &stopCity, &stopState, &stopZip, &stopDate, &stopTime,
			&locName, &locStreet, &locCity, &locState, &locZip,
		)
		if err != nil {
			return fmt.Errorf("leg %q: scan location: %w", leg.ID, err)
		}

		switch {
		case stopID.Valid:
			stop := domain.LoadStop{
				ID:     stopID.String,
				Type:   domain.StopType(stopType.String),
				Name:   stopName.String,
				Street: stopStreet.String,
				City:   stopCity.String,
				State:  stopState.String,
				Zip:    stopZip.String,
				Time:   stopTime.String,
			}
			if stopDate.Valid {
				stop.Date = stopDate.Time
			}
			leg.Locations = append(leg.Locations, domain.FromLoadStop(stop))
		case locationID.Valid:
			leg.Locations = append(leg.Locations, domain.FromLocation(domain.Location{
				ID:     locationID.String,
				Name:   locName.String,
				Street: locStreet.String,
				City:   locCity.String,
				State:  locState.String,
				Zip:    locZip.String,
			}))
		}
	}
	if err := locRows.Err(); err != nil {
		return fmt.Errorf("leg %q: location iteration: %w", leg.ID, err)
	}

	return nil
}
