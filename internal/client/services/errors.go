package services

import "errors"

var (
	// ErrSuperseded is returned by an operation whose result was discarded
	// because a later operation (e.g. Logout during Login) changed the session.
	ErrSuperseded = errors.New("session changed while the request was in flight")

	// ErrLoginRequired is returned when an operation needs an authenticated
	// session and there is none.
	ErrLoginRequired = errors.New("login required")

	ErrShareCreate = errors.New("failed to create share link")

	// ErrShareUnavailable covers unknown, expired and already used share
	// links alike. Callers must not try to tell them apart.
	ErrShareUnavailable = errors.New("This share link is invalid, expired, or already used.")
)

const defaultLoginMessage = "Login failed"

// LoginError is a failed login with a message fit for the user.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return e.Err }
