package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DriverAssignment is the persisted form of one driver's charge on a leg.
type DriverAssignment struct {
	DriverID    string
	Driver      *Driver
	ChargeType  *ChargeType
	ChargeValue *decimal.Decimal
	AssignedAt  time.Time
}

// RouteLeg is a persisted unit of work within a route: one ordered stop
// sequence worked by one or more assigned drivers on a scheduled date.
type RouteLeg struct {
	ID                 string
	ScheduledDate      time.Time
	ScheduledTime      string
	DriverInstructions string
	DriverAssignments  []DriverAssignment
	Locations          []LegLocation
}

// Route is the collection of legs belonging to exactly one load.
// Legs are kept ordered by scheduled date, then scheduled time.
type Route struct {
	ID     string
	LoadID string
	Legs   []RouteLeg
}
