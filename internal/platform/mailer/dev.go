package mailer

import (
	"context"

	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

// DevMailer logs emails instead of sending them. Used when MAIL_DEV_MODE is
// on or no API key is configured.
type DevMailer struct{}

func (DevMailer) Send(ctx context.Context, toEmail, toName, subject, text, html string) error {
	logger.InfoContext(ctx, "dev mailer: email suppressed",
		"to", toEmail,
		"subject", subject,
		"text", text,
	)
	return nil
}

var _ Mailer = DevMailer{}
