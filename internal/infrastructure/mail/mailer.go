// Package mail implements the outbound email port over SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"github.com/openhire/recruitment-api/internal/api/metrics"
)

// Config captures SMTP settings. An empty Host disables delivery.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends plain-text email over SMTP. Delivery failures are returned to
// the caller, which treats them as best-effort.
type Mailer struct {
	client *gomail.Client
	from   string
	logger zerolog.Logger
}

// New builds a Mailer. When cfg.Host is empty a log-only mailer is returned
// so development environments work without an SMTP server.
func New(cfg Config, logger zerolog.Logger) (*Mailer, error) {
	m := &Mailer{from: cfg.From, logger: logger}
	if cfg.Host == "" {
		return m, nil
	}

	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail client: %w", err)
	}
	m.client = client
	return m, nil
}

// Send delivers one plain-text message.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.client == nil {
		m.logger.Info().Str("to", to).Str("subject", subject).Msg("smtp disabled, email not sent")
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("mail send: %w", err)
	}
	metrics.EmailsSentTotal.WithLabelValues("ok").Inc()
	return nil
}
