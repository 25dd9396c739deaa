package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Exchange is the topic exchange submission events are published to
const Exchange = "careerai_events"

// Status is the lifecycle stage of a wizard submission
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// SubmissionEvent describes one step of a submission
type SubmissionEvent struct {
	UserID   string    `json:"userId"`
	Status   Status    `json:"status"`
	Provider string    `json:"provider,omitempty"`
	Error    string    `json:"error,omitempty"`
	At       time.Time `json:"at"`
}

// RoutingKey returns the per-user routing key
func (e SubmissionEvent) RoutingKey() string {
	return fmt.Sprintf("ikigai.%s", e.UserID)
}

// Publisher emits submission events
type Publisher interface {
	Publish(ctx context.Context, event SubmissionEvent) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SubmissionEvent) error { return nil }

// Channel is the subset of *amqp.Channel the publisher needs
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher opens a channel per publish on a shared connection
type AMQPPublisher struct {
	open func() (Channel, error)
}

// NewAMQPPublisher declares the exchange and returns a publisher over conn
func NewAMQPPublisher(conn *amqp.Connection) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return newPublisher(func() (Channel, error) { return conn.Channel() }), nil
}

func newPublisher(open func() (Channel, error)) *AMQPPublisher {
	return &AMQPPublisher{open: open}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event SubmissionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ch, err := p.open()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	return ch.Publish(
		Exchange,
		event.RoutingKey(),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   event.At,
			Body:        body,
		},
	)
}
