package domain

import "errors"

// Sentinel errors returned by services and repositories. The delivery layer
// maps these onto HTTP status codes; anything else is an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidIdentity    = errors.New("invalid identity")
	ErrRegistrationClosed = errors.New("registration closed")
	ErrNoRegistrations    = errors.New("no registrations")
)
