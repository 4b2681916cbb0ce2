package session

import "errors"

var (
	// -- Resource State --
	ErrNoSession = errors.New("no session in context")
)
