package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"carrier-dispatch-service/internal/adapters/messaging"
	"carrier-dispatch-service/internal/domain"
	"carrier-dispatch-service/internal/platform/obs"
	"carrier-dispatch-service/internal/ports"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationWorker consumes committed-assignment events and sends the
// driver an SMS with a link to the load. Failures are logged and the
// message acked anyway: notification is best effort and never retried
// by this service, and the commit it follows is already durable.
type NotificationWorker struct {
	Channel  *amqp.Channel
	Notifier ports.Notifier

	// AppURL is the public base URL load links are built from.
	AppURL string
}

func NewNotificationWorker(ch *amqp.Channel, notifier ports.Notifier, appURL string) *NotificationWorker {
	return &NotificationWorker{Channel: ch, Notifier: notifier, AppURL: appURL}
}

// Run consumes the notify queue until the context is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) error {
	deliveries, err := w.Channel.Consume(messaging.NotifyQueue, "notification-worker", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("notification worker: consume %q: %w", messaging.NotifyQueue, err)
	}

	log.Printf("notification worker started queue=%s", messaging.NotifyQueue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("notification worker: delivery channel closed")
			}
			w.handle(ctx, delivery)
		}
	}
}

func (w *NotificationWorker) handle(ctx context.Context, delivery amqp.Delivery) {
	ctx = obs.WithRequestID(ctx, uuid.NewString())

	defer func() {
		if err := delivery.Ack(false); err != nil {
			log.Printf("notification worker: ack failed: %v", err)
		}
	}()

	var event ports.AssignmentCommitted
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		log.Printf("notification worker: drop malformed event: %v", err)
		return
	}

	if event.DriverPhone == "" {
		log.Printf("notification worker: driver %s has no phone, skipping", event.DriverID)
		return
	}

	if err := w.Notifier.NotifyAssignment(ctx, event.DriverPhone, MessageBody(w.AppURL, event)); err != nil {
		nerr := &domain.NotificationError{DriverID: event.DriverID, Err: err}
		log.Printf("notification worker: %v", nerr)
		return
	}

	log.Printf("notification worker: notified driver=%s leg=%s", event.DriverID, event.LegID)
}

// MessageBody builds the SMS text for a new assignment.
func MessageBody(appURL string, event ports.AssignmentCommitted) string {
	link := fmt.Sprintf("%s/l/%s?did=%s", appURL, event.LoadID, event.DriverID)
	return fmt.Sprintf("You have a new assignment!\n\nView Load: %s", link)
}
