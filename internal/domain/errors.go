package domain

import "errors"

// Typed failures surfaced by repositories and the admin service. Handlers map
// them to HTTP status codes with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidRole     = errors.New("invalid role")
	ErrQueryTooShort   = errors.New("search query must be at least 2 characters")
	ErrEmailTaken      = errors.New("email already registered")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// ErrPartialFailure is reported when a cascading delete halts midway.
	// The user record is deliberately left intact so the delete can be retried.
	ErrPartialFailure = errors.New("partial failure")
)
