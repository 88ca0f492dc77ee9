package ports

import "context"

// Mailer sends a plain-text email to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
