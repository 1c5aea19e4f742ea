package services

import (
	"errors"
	"strings"

	"bloghouse/app/models"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrTitleTaken         = errors.New("a post with this title already exists")
	ErrUnknownEmail       = errors.New("email is not registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("administrator access required")
)

// ValidationError carries user-facing messages for a rejected form.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func newValidationError(err error) error {
	var fe models.FieldErrors
	if errors.As(err, &fe) {
		return &ValidationError{Messages: fe}
	}
	return &ValidationError{Messages: []string{err.Error()}}
}
