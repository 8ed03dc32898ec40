package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"carrier-dispatch-service/internal/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// AssignmentsExchange carries assignment lifecycle events.
	AssignmentsExchange = "assignments"

	// RouteKeyCommitted is the routing key for committed-assignment events.
	RouteKeyCommitted = "assignment.committed"

	// NotifyQueue is consumed by the notification worker.
	NotifyQueue = "assignment.notify"
)

// Connect dials RabbitMQ with retries and declares the assignment topology.
func Connect(url string) (*amqp.Connection, *amqp.Channel, error) {
	var (
		conn *amqp.Connection
		err  error
	)

	for attempt := 1; attempt <= 10; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Printf("rabbitmq not ready, retrying... (%d/10)", attempt)
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("connect rabbitmq: open channel: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}

	return conn, ch, nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(AssignmentsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", AssignmentsExchange, err)
	}

	if _, err := ch.QueueDeclare(NotifyQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %q: %w", NotifyQueue, err)
	}

	if err := ch.QueueBind(NotifyQueue, RouteKeyCommitted, AssignmentsExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %q: %w", NotifyQueue, err)
	}

	return nil
}

// AMQP implementation of the EventPublisher port.
type AMQPEventPublisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

func NewAMQPEventPublisher(ch *amqp.Channel) *AMQPEventPublisher {
	return &AMQPEventPublisher{ch: ch}
}

// Publish one committed-assignment event as persistent JSON.
func (p *AMQPEventPublisher) PublishAssignmentCommitted(ctx context.Context, event ports.AssignmentCommitted) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("publish assignment committed: marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, AssignmentsExchange, RouteKeyCommitted, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish assignment committed: %w", err)
	}

	return nil
}
