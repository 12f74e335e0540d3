// Package notify consumes appointment events and turns them into emails. It
// runs in its own worker process so a slow mail provider never holds up a
// booking request.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Waynenyarky/capstone-booking/internal/platform/mailer"
	"github.com/Waynenyarky/capstone-booking/pkg/events"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

const queueGroup = "notify-workers"

type Consumer struct {
	bus    events.Subscriber
	mailer mailer.Mailer
}

func NewConsumer(bus events.Subscriber, m mailer.Mailer) *Consumer {
	return &Consumer{bus: bus, mailer: m}
}

// Start queue-subscribes to the appointment subjects. Workers in the same
// queue group share the load; each event is handled once.
func (c *Consumer) Start() error {
	if err := c.bus.QueueSubscribe(events.AppointmentRequested, queueGroup, c.onRequested); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.AppointmentRequested, err)
	}
	if err := c.bus.QueueSubscribe(events.AppointmentReviewed, queueGroup, c.onReviewed); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.AppointmentReviewed, err)
	}
	return nil
}

func (c *Consumer) onRequested(msg *events.Message) {
	ctx := context.Background()

	var ev events.AppointmentRequestedEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		logger.Error("bad appointment.requested payload", "error", err)
		return
	}

	subject := "Booking request received"
	text := fmt.Sprintf(
		"Your booking request for %s with %s on %s has been received.\n"+
			"The provider will review it shortly.",
		ev.ServiceName, ev.ProviderName, ev.AppointmentAt.Format("Mon, 02 Jan 2006 15:04"),
	)
	html := fmt.Sprintf(
		"<h2>Booking request received</h2>"+
			"<p>Your booking request for <strong>%s</strong> with <strong>%s</strong> "+
			"on <strong>%s</strong> has been received.</p>"+
			"<p>The provider will review it shortly.</p>",
		ev.ServiceName, ev.ProviderName, ev.AppointmentAt.Format("Mon, 02 Jan 2006 15:04"),
	)

	if err := c.mailer.Send(ctx, ev.CustomerEmail, "", subject, text, html); err != nil {
		logger.Error("send requested email failed", "error", err, "appointment_id", ev.AppointmentID)
		return
	}
	logger.Info("requested email sent", "appointment_id", ev.AppointmentID)
}

func (c *Consumer) onReviewed(msg *events.Message) {
	ctx := context.Background()

	var ev events.AppointmentReviewedEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		logger.Error("bad appointment.reviewed payload", "error", err)
		return
	}

	var subject, outcome string
	switch ev.Decision {
	case "accepted":
		subject = "Booking confirmed"
		outcome = "Your booking has been accepted."
	case "declined":
		subject = "Booking declined"
		outcome = "Unfortunately your booking was declined."
	default:
		logger.Warn("unknown review decision", "decision", ev.Decision, "appointment_id", ev.AppointmentID)
		return
	}

	text := outcome
	if ev.DecisionNotes != "" {
		text += "\n\nProvider notes: " + ev.DecisionNotes
	}
	html := fmt.Sprintf("<h2>%s</h2><p>%s</p>", subject, outcome)
	if ev.DecisionNotes != "" {
		html += fmt.Sprintf("<p>Provider notes: %s</p>", ev.DecisionNotes)
	}

	if err := c.mailer.Send(ctx, ev.CustomerEmail, "", subject, text, html); err != nil {
		logger.Error("send reviewed email failed", "error", err, "appointment_id", ev.AppointmentID)
		return
	}
	logger.Info("reviewed email sent", "appointment_id", ev.AppointmentID, "decision", ev.Decision)
}
