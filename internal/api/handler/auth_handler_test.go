package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

type stubAuthService struct {
	registered *ports.RegisterInput
	loginErr   error
	logoutErr  error
	refreshed  string
	loggedOut  []string
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	s.registered = &input
	return &domain.User{ID: "user_1", Email: input.Email}, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &ports.LoginResult{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         &domain.User{ID: "user_1", Email: email},
	}, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	s.refreshed = refreshToken
	return "fresh-access-token", nil
}

func (s *stubAuthService) Logout(ctx context.Context, accessToken string) error {
	if s.logoutErr != nil {
		return s.logoutErr
	}
	s.loggedOut = append(s.loggedOut, accessToken)
	return nil
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthRegisterHandler(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, 7*24*time.Hour, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"s3cret"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["user_id"] != "user_1" {
		t.Fatalf("user id missing from response: %v", body)
	}
	if svc.registered == nil || svc.registered.Email != "ada@example.com" {
		t.Fatalf("input not forwarded: %+v", svc.registered)
	}
}

func TestAuthRegisterHandler_ValidationAggregated(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 7*24*time.Hour, false, zerolog.Nop())

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"first_name":"A","email":"not-an-email","password":"x"}`)

	err := h.Register(c)
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected aggregated validation error, got %v", err)
	}
	// first_name too short, last_name missing, email malformed, password too
	// short: all four must be reported at once.
	if len(ve.Fields) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(ve.Fields), ve.Fields)
	}
}

func TestAuthRegisterHandler_FirstNameLength(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 7*24*time.Hour, false, zerolog.Nop())

	// Two characters is below the minimum for first names.
	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"first_name":"Al","last_name":"Go","email":"al@example.com","password":"s3cret"}`)

	err := h.Register(c)
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 1 || !strings.Contains(ve.Fields[0], "first_name") {
		t.Fatalf("unexpected violations: %v", ve.Fields)
	}
}

func TestAuthLoginHandler_SetsRefreshCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 7*24*time.Hour, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ada@example.com","password":"s3cret"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body tokenResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.AccessToken != "access-token" {
		t.Fatalf("access token missing")
	}
	if strings.Contains(rec.Body.String(), "refresh-token") {
		t.Fatalf("refresh token must not appear in the body")
	}

	cookies := rec.Result().Cookies()
	var refresh *http.Cookie
	for _, ck := range cookies {
		if ck.Name == refreshCookieName {
			refresh = ck
		}
	}
	if refresh == nil {
		t.Fatalf("refresh cookie not set")
	}
	if refresh.Value != "refresh-token" || !refresh.HttpOnly || refresh.Path != "/auth" || refresh.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie attributes wrong: %+v", refresh)
	}
}

func TestAuthLoginHandler_BadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials}, 7*24*time.Hour, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ada@example.com","password":"wrong"}`)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("error must propagate to the error handler, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie on failed login")
	}
}

func TestAuthRefreshHandler(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, 7*24*time.Hour, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: refreshCookieName, Value: "refresh-token"})

	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if svc.refreshed != "refresh-token" {
		t.Fatalf("cookie not forwarded to service")
	}

	var body tokenResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.AccessToken != "fresh-access-token" {
		t.Fatalf("new access token missing")
	}
}

func TestAuthRefreshHandler_MissingCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, 7*24*time.Hour, false, zerolog.Nop())

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/refresh", "")

	err := h.Refresh(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthLogoutHandler_ClearsCookieAndRevokes(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, 7*24*time.Hour, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Request().Header.Set("Authorization", "Bearer the-access-token")

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "the-access-token" {
		t.Fatalf("token not revoked: %v", svc.loggedOut)
	}

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == refreshCookieName {
			cleared = ck
		}
	}
	if cleared == nil || cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("refresh cookie not cleared: %+v", cleared)
	}
}

func TestAuthLogoutHandler_RevocationFailureStillClearsCookie(t *testing.T) {
	svc := &stubAuthService{logoutErr: errors.New("redis down")}
	h := NewAuthHandler(svc, 7*24*time.Hour, false, zerolog.Nop())

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Request().Header.Set("Authorization", "Bearer the-access-token")

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout must not fail when revocation does: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == refreshCookieName {
			cleared = ck
		}
	}
	if cleared == nil || cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("refresh cookie not cleared: %+v", cleared)
	}
}
