package ports

import "context"

// Port: best-effort SMS dispatch to a driver. Errors are reported to the
// caller (the notification worker) for logging only; they never reach
// the assignment engine.
type Notifier interface {
	NotifyAssignment(ctx context.Context, phone string, body string) error
}
