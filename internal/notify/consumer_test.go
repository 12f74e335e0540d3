package notify

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Waynenyarky/capstone-booking/pkg/events"
)

// fakeBus delivers published events synchronously to queue subscribers.
type fakeBus struct {
	handlers map[string]func(*events.Message)
}

func newFakeBus() *fakeBus {
	return &fakeBus{handlers: make(map[string]func(*events.Message))}
}

func (b *fakeBus) Subscribe(subject string, handler func(*events.Message)) error {
	b.handlers[subject] = handler
	return nil
}

func (b *fakeBus) QueueSubscribe(subject, queue string, handler func(*events.Message)) error {
	b.handlers[subject] = handler
	return nil
}

func (b *fakeBus) Close() error { return nil }

func (b *fakeBus) deliver(t *testing.T, subject string, payload any) {
	t.Helper()
	h, ok := b.handlers[subject]
	if !ok {
		t.Fatalf("no handler for %s", subject)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	h(&events.Message{Subject: subject, Data: data, Timestamp: time.Now()})
}

type sentMail struct {
	to      string
	subject string
	text    string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(ctx context.Context, toEmail, toName, subject, text, html string) error {
	m.sent = append(m.sent, sentMail{to: toEmail, subject: subject, text: text})
	return nil
}

func TestConsumerRequestedEmail(t *testing.T) {
	bus := newFakeBus()
	mail := &fakeMailer{}
	c := NewConsumer(bus, mail)
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	bus.deliver(t, events.AppointmentRequested, events.AppointmentRequestedEvent{
		AppointmentID: "appt-1",
		CustomerEmail: "customer@example.com",
		ServiceName:   "Aircon Cleaning",
		ProviderName:  "Cebu Handy Co",
		AppointmentAt: time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
	})

	if len(mail.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(mail.sent))
	}
	got := mail.sent[0]
	if got.to != "customer@example.com" {
		t.Errorf("to = %s", got.to)
	}
	if !strings.Contains(got.text, "Aircon Cleaning") || !strings.Contains(got.text, "Cebu Handy Co") {
		t.Errorf("text missing booking details: %q", got.text)
	}
}

func TestConsumerReviewedEmail(t *testing.T) {
	bus := newFakeBus()
	mail := &fakeMailer{}
	c := NewConsumer(bus, mail)
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	bus.deliver(t, events.AppointmentReviewed, events.AppointmentReviewedEvent{
		AppointmentID: "appt-1",
		CustomerEmail: "customer@example.com",
		Decision:      "declined",
		DecisionNotes: "fully booked that day",
	})

	if len(mail.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(mail.sent))
	}
	got := mail.sent[0]
	if got.subject != "Booking declined" {
		t.Errorf("subject = %s", got.subject)
	}
	if !strings.Contains(got.text, "fully booked that day") {
		t.Errorf("text missing notes: %q", got.text)
	}

	// Unknown decisions are dropped, not mailed.
	bus.deliver(t, events.AppointmentReviewed, events.AppointmentReviewedEvent{
		AppointmentID: "appt-2",
		CustomerEmail: "customer@example.com",
		Decision:      "postponed",
	})
	if len(mail.sent) != 1 {
		t.Fatalf("unknown decision produced mail: %d", len(mail.sent))
	}
}
