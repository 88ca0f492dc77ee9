package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// NotificationService exposes a user's own notification feed.
type NotificationService interface {
	ListMine(ctx context.Context, actor Identity) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, actor Identity, id string) (*domain.Notification, error)
}
