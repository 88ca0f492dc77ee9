package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &domain.ValidationError{Fields: []string{"title is required"}}, http.StatusBadRequest},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound},
		{"job missing", domain.ErrJobNotFound, http.StatusNotFound},
		{"application missing", domain.ErrApplicationNotFound, http.StatusNotFound},
		{"interview missing", domain.ErrInterviewNotFound, http.StatusNotFound},
		{"notification missing", domain.ErrNotificationNotFound, http.StatusNotFound},
		{"bad transition", domain.ErrInvalidTransition, http.StatusConflict},
		{"echo error", echo.NewHTTPError(http.StatusTeapot, "teapot"), http.StatusTeapot},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handle(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}

			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid error envelope: %v", err)
			}
			if body.Error == "" {
				t.Fatalf("error message missing")
			}
		})
	}
}

func TestErrorHandler_HidesInternalDetail(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handle(errors.New("pq: secret connection string leaked"), c)

	var body errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != "internal server error" {
		t.Fatalf("internal cause must not leak, got %q", body.Error)
	}
}

func TestErrorHandler_ValidationAggregates(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handle(&domain.ValidationError{Fields: []string{"title is required", "description must be at least 10 characters"}}, c)

	var body errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	for _, want := range []string{"title is required", "description must be at least 10 characters"} {
		if !strings.Contains(body.Error, want) {
			t.Fatalf("aggregated message missing %q: %q", want, body.Error)
		}
	}
}
