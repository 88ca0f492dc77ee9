package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

const refreshCookieName = "refresh_token"

// AuthHandler exposes registration and the token lifecycle.
type AuthHandler struct {
	service    ports.AuthService
	refreshTTL time.Duration
	secure     bool
	logger     zerolog.Logger
}

// NewAuthHandler builds the handler. secure controls the Secure flag on the
// refresh cookie and should be true in production.
func NewAuthHandler(service ports.AuthService, refreshTTL time.Duration, secure bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: service, refreshTTL: refreshTTL, secure: secure, logger: logger}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required,min=3"`
	LastName  string `json:"last_name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=admin hr employee applicant"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user,omitempty"`
}

// Register creates an account and returns its id.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"user_id": user.ID})
}

// Login verifies credentials, sets the refresh cookie and returns the access
// token in the body. The refresh token travels only in the cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.refreshCookie(result.RefreshToken, h.refreshTTL))
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: result.AccessToken, User: result.User})
}

// Refresh exchanges the refresh cookie for a new access token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	access, err := h.service.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: access})
}

// Logout revokes the presented access token and clears the refresh cookie.
// Idempotent: logging out without a token, or with the revocation store
// unreachable, still clears the cookie and succeeds. The unrevoked token
// simply ages out at its expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := bearerToken(c); token != "" {
		if err := h.service.Logout(c.Request().Context(), token); err != nil {
			h.logger.Warn().Err(err).Msg("token revocation failed during logout")
		}
	}

	c.SetCookie(h.refreshCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) refreshCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/auth",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && (header[:7] == "Bearer " || header[:7] == "bearer ") {
		return header[7:]
	}
	return header
}
