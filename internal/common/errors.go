// Package common defines shared constants and sentinel errors used across
// client layers of PassGod. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors: out-of-range or missing input, detected before any
	// network call is made.
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError carries a short, user-facing reason and matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RequireFields returns a ValidationError naming the first empty value.
// Pairs are given as name, value, name, value, ...
func RequireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return NewValidationError(pairs[i] + " is required")
		}
	}
	return nil
}
