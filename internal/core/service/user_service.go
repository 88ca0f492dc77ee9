package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

// UserService implements user administration. The full roster is served
// cache-aside under a single fixed key; any mutation deletes it.
type UserService struct {
	users  ports.UserRepository
	cache  ports.Cache
	bus    ports.EventBus
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, cache ports.Cache, bus ports.EventBus, logger zerolog.Logger) *UserService {
	return &UserService{users: users, cache: cache, bus: bus, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	if raw, ok, err := s.cache.Get(ctx, ports.KeyAllUsers); err != nil {
		s.logger.Warn().Err(err).Msg("user list cache read failed")
	} else if ok {
		var cached []*domain.User
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(users); err == nil {
		if err := s.cache.Set(ctx, ports.KeyAllUsers, raw, ports.ListingTTL); err != nil {
			s.logger.Warn().Err(err).Msg("user list cache write failed")
		}
	}

	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, actor ports.Identity, id string) (*domain.User, error) {
	if !actor.Privileged() && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actor ports.Identity, input ports.CreateUserInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	password := input.Password
	if password == "" {
		password = randomPassword()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
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
		Department:   input.Department,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRoster(ctx)

	s.logger.Info().Str("user_id", user.ID).Str("actor_id", actor.ID).Msg("user created")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionCreateUser,
		ActorID:    actor.ID,
		TargetType: "User",
		TargetID:   user.ID,
		OccurredAt: now,
	})

	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor ports.Identity, id string, input ports.UpdateUserInput) (*domain.User, error) {
	// Self-or-admin: hr may read other users but not modify them.
	if actor.Role != domain.RoleAdmin && actor.ID != id {
		return nil, domain.ErrForbidden
	}

	fields := map[string]any{}
	details := map[string]any{}
	setField := func(name string, v *string) {
		if v != nil {
			fields[name] = *v
			details[name] = *v
		}
	}
	setField("first_name", input.FirstName)
	setField("last_name", input.LastName)
	setField("department", input.Department)
	setField("manager_id", input.ManagerID)
	setField("profile_photo_url", input.ProfilePhotoURL)
	setField("role", input.Role)

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		fields["email"] = email
		details["email"] = email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		// The hash stays out of the audit detail payload.
		fields["password_hash"] = string(hash)
	}

	user, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateRoster(ctx)

	s.logger.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user updated")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionUpdateUser,
		ActorID:    actor.ID,
		TargetType: "User",
		TargetID:   id,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	})

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor ports.Identity, id string) error {
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.invalidateRoster(ctx)

	s.logger.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user deleted (soft)")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionDeleteUser,
		ActorID:    actor.ID,
		TargetType: "User",
		TargetID:   id,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

func (s *UserService) invalidateRoster(ctx context.Context) {
	if err := s.cache.Delete(ctx, ports.KeyAllUsers); err != nil {
		s.logger.Warn().Err(err).Msg("user list cache invalidation failed")
	}
}
