package domain

import (
	"errors"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")
var ErrJobNotFound = errors.New("job not found")
var ErrApplicationNotFound = errors.New("application not found")
var ErrInterviewNotFound = errors.New("interview not found")
var ErrNotificationNotFound = errors.New("notification not found")

var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidTransition = errors.New("invalid status transition")

// ValidationError aggregates every field-level violation found in a payload.
// The operation must not proceed while any violation exists.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
