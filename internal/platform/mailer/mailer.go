// Package mailer sends notification emails. The notify worker is the only
// consumer; delivery failures are logged and never retried here.
package mailer

import "context"

type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, text, html string) error
}
