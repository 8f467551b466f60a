// Package common defines shared constants and sentinel errors used across
// the guardbox layers. Callers should use errors.Is to match the sentinel
// values and errors.As for FrozenError.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorAlreadyExists  = errors.New("already exists")
	ErrorStorageCorrupt = errors.New("storage corrupt")
	ErrorStorageWrite   = errors.New("storage write error")

	// Auth errors. Unknown username and wrong password both map to
	// ErrorBadCredential so the two cases are indistinguishable.
	ErrorBadCredential    = errors.New("invalid username or password")
	ErrorPermissionDenied = errors.New("permission denied")

	// Emergency-reset errors.
	ErrorCodeExpired = errors.New("verification code expired")
	ErrorBadCode     = errors.New("invalid verification code")
	ErrorSequence    = errors.New("operation out of sequence")

	// Validation / token errors.
	ErrorValidation = errors.New("validation error")
	ErrInvalidToken = errors.New("invalid token")
)

// FrozenError reports that an account is temporarily frozen after too many
// failed login attempts. Remaining is the time left until the freeze lifts.
type FrozenError struct {
	Remaining time.Duration
}

func (e *FrozenError) Error() string {
	return fmt.Sprintf("account frozen: try again in %d seconds", int(e.Remaining.Round(time.Second).Seconds()))
}
