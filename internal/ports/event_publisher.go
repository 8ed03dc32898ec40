package ports

import (
	"context"
	"time"
)

// AssignmentCommitted is emitted after a leg submit succeeds, once per
// assigned driver that should be notified. Delivery is best effort: the
// commit stands whether or not the event reaches a consumer.
type AssignmentCommitted struct {
	LegID         string    `json:"leg_id"`
	LoadID        string    `json:"load_id"`
	DriverID      string    `json:"driver_id"`
	DriverName    string    `json:"driver_name"`
	DriverPhone   string    `json:"driver_phone"`
	ScheduledDate time.Time `json:"scheduled_date"`
	ScheduledTime string    `json:"scheduled_time"`
}

// Port: outbound boundary for assignment events.
type EventPublisher interface {
	PublishAssignmentCommitted(ctx context.Context, event AssignmentCommitted) error
}
