package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	// MarkRead flips the read flag. Returns domain.ErrNotificationNotFound
	// when the id does not belong to the given user.
	MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error)
}
