package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

const bcryptCost = 12

// AuthService implements registration and the token lifecycle. Access tokens
// are short-lived HS256 assertions of id+role; refresh tokens carry only the
// id, are signed with a separate secret, and can mint new access tokens but
// never grant resource access themselves.
type AuthService struct {
	users         ports.UserRepository
	revoker       ports.TokenRevoker
	bus           ports.EventBus
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	logger        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, revoker ports.TokenRevoker, bus ports.EventBus, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:         users,
		revoker:       revoker,
		bus:           bus,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		logger:        logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleEmployee
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionRegisterUser,
		ActorID:    user.ID,
		TargetType: "User",
		TargetID:   user.ID,
		OccurredAt: now,
		Emails: []ports.EmailIntent{{
			To:      user.Email,
			Subject: "Welcome to the recruitment platform",
			Body:    "Hello " + user.FirstName + ", your account has been created.",
		}},
	})

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.users.RecordLogin(ctx, user.ID); err != nil {
		// Non-fatal: last-login is bookkeeping, not an authentication input.
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record login time")
	}

	accessToken, err := s.mintAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.mintRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")

	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	user, err := s.users.FindByID(ctx, sub)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	s.logger.Info().Str("user_id", user.ID).Msg("access token refreshed")

	return s.mintAccessToken(user.ID, user.Role)
}

// Logout revokes the presented access token for its remaining lifetime so it
// cannot be replayed before expiry. An absent or unparsable token is not an
// error: the refresh cookie is cleared by the transport layer regardless.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.accessSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil
	}

	ttl := s.accessTTL
	if exp, perr := claims.GetExpirationTime(); perr == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.revoker.Revoke(ctx, accessToken, ttl); err != nil {
		s.logger.Error().Err(err).Msg("failed to revoke access token")
		return err
	}
	return nil
}

func (s *AuthService) mintAccessToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(s.accessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.accessSecret))
}

func (s *AuthService) mintRefreshToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(s.refreshTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.refreshSecret))
}

// randomPassword returns a random hex string for admin-created accounts
// registered without an explicit password.
func randomPassword() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))[:16]
	}
	return hex.EncodeToString(b)
}
