package application

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidCredentials is returned when a login attempt fails.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrSessionExpired is returned when a session token is past its expiry.
	ErrSessionExpired = errors.New("application: session expired")
	// ErrUnauthorized is returned when a request lacks a valid session.
	ErrUnauthorized = errors.New("application: unauthorized")
)

// ValidationError carries the user-facing rejection messages produced by the
// policy pipeline, in discovery order.
type ValidationError struct {
	Messages []string
}

// Error implements the error interface by joining the messages the way they
// are surfaced to clients.
func (v *ValidationError) Error() string {
	if v == nil || len(v.Messages) == 0 {
		return "validation failed"
	}
	return strings.Join(v.Messages, " ")
}

// HasErrors reports whether any messages were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.Messages) > 0
}

func validationFailure(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
