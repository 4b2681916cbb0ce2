package auth

import "errors"

var (
	// -- Configuration --
	ErrMissingSecret = errors.New("session secret is not set")

	// -- Token --
	ErrInvalidToken     = errors.New("invalid session token")
	ErrUnexpectedMethod = errors.New("unexpected signing method")
)
