package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// CreateUserInput carries an admin-created account.
type CreateUserInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string // optional; a random one is generated when empty
	Role       string
	Department string
}

// UpdateUserInput carries a partial user update; nil pointers are untouched.
type UpdateUserInput struct {
	FirstName       *string
	LastName        *string
	Email           *string
	Password        *string
	Role            *string
	Department      *string
	ManagerID       *string
	ProfilePhotoURL *string
}

// UserService defines use-case operations for user administration.
// Read and update are self-or-privileged: a non-privileged identity may only
// act on its own id.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, actor Identity, id string) (*domain.User, error)
	Create(ctx context.Context, actor Identity, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor Identity, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor Identity, id string) error
}
