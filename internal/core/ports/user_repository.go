package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// All finds implicitly exclude soft-deleted records.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns all active users sorted by creation time, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	// Update applies the given field set and returns the updated document.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	SoftDelete(ctx context.Context, id string) error
	RecordLogin(ctx context.Context, id string) error
}
