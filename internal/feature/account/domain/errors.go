// Package domain defines domain-level errors for the account feature.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for account operations.
// They carry no user-facing wording; the transport layer decides what the client sees.
var (
	// ErrDuplicateKey indicates that a record with the same identifying key already exists.
	ErrDuplicateKey = errors.New("account already exists")

	// ErrNotFound indicates that no record matches the identifying key.
	// Repositories return it; the store turns it into an absent result.
	ErrNotFound = errors.New("account not found")

	// ErrInvalidCredentials covers both an unknown key and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnavailable indicates that the backing medium could not be reached or failed internally.
	ErrUnavailable = errors.New("backing medium unavailable")
)

// ValidationError reports caller-supplied data that fails a structural check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Unavailable wraps a backing-medium failure so that both ErrUnavailable and
// the original cause match with errors.Is.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
