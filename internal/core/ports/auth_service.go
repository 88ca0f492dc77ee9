package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// RegisterInput carries a self-service registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string // optional; defaults to employee
}

// LoginResult carries both credentials minted on a successful login.
// RefreshToken is set as an httpOnly cookie by the transport layer and
// must never grant resource access on its own.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// AuthService implements registration and the token lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Logout revokes the presented access token for its remaining lifetime.
	Logout(ctx context.Context, accessToken string) error
}
