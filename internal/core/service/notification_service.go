package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

// NotificationService serves a user's notification feed and, as an event
// consumer, delivers the side effects attached to domain events: outbound
// email, persisted notification records, and real-time pushes. Delivery is
// best-effort throughout; individual failures are logged and swallowed.
type NotificationService struct {
	repo     ports.NotificationRepository
	mailer   ports.Mailer
	registry ports.Registry
	logger   zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, mailer ports.Mailer, registry ports.Registry, logger zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, mailer: mailer, registry: registry, logger: logger}
}

func (s *NotificationService) ListMine(ctx context.Context, actor ports.Identity) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, actor.ID)
}

func (s *NotificationService) MarkRead(ctx context.Context, actor ports.Identity, id string) (*domain.Notification, error) {
	return s.repo.MarkRead(ctx, id, actor.ID)
}

// Name implements ports.EventConsumer.
func (s *NotificationService) Name() string { return "notifier" }

// Consume implements ports.EventConsumer. It never returns an error: side
// effects must not influence the outcome of the operation that emitted the
// event, and there is no retry path to feed.
func (s *NotificationService) Consume(ctx context.Context, event ports.DomainEvent) error {
	for _, email := range event.Emails {
		if err := s.mailer.Send(ctx, email.To, email.Subject, email.Body); err != nil {
			s.logger.Error().Err(err).Str("to", email.To).Str("action", event.Action).Msg("email delivery failed")
		}
	}

	for _, notice := range event.Notices {
		if notice.Persist {
			now := time.Now().UTC()
			_, err := s.repo.Create(ctx, &domain.Notification{
				UserID:    notice.UserID,
				Type:      notice.Type,
				Payload:   notice.Payload,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				s.logger.Error().Err(err).Str("user_id", notice.UserID).Str("type", notice.Type).Msg("failed to persist notification")
			}
		}
		if notice.Push {
			s.registry.Emit(notice.UserID, notice.Type, notice.Payload)
		}
	}

	return nil
}
