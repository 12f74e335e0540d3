package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// NoopBus drops everything. Used in dev mode when no NATS is configured.
type NoopBus struct{}

func (NoopBus) Publish(ctx context.Context, subject string, data interface{}) error { return nil }
func (NoopBus) Subscribe(subject string, handler func(msg *Message)) error          { return nil }
func (NoopBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	return nil
}
func (NoopBus) Close() error { return nil }

// Event subjects
const (
	AppointmentRequested = "appointment.requested"
	AppointmentReviewed  = "appointment.reviewed"
	OfferingUpdated      = "offering.updated"
)

// Event payloads
type AppointmentRequestedEvent struct {
	AppointmentID  string    `json:"appointment_id"`
	CustomerUserID string    `json:"customer_user_id"`
	CustomerEmail  string    `json:"customer_email"`
	ProviderID     string    `json:"provider_id"`
	ServiceName    string    `json:"service_name"`
	ProviderName   string    `json:"provider_name"`
	AppointmentAt  time.Time `json:"appointment_at"`
	Pricing        string    `json:"pricing"`
	CreatedAt      time.Time `json:"created_at"`
}

type AppointmentReviewedEvent struct {
	AppointmentID string    `json:"appointment_id"`
	ProviderID    string    `json:"provider_id"`
	CustomerEmail string    `json:"customer_email"`
	Decision      string    `json:"decision"`
	DecisionNotes string    `json:"decision_notes"`
	ReviewedAt    time.Time `json:"reviewed_at"`
}

type OfferingUpdatedEvent struct {
	OfferingID string    `json:"offering_id"`
	ProviderID string    `json:"provider_id"`
	Active     bool      `json:"active"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}
