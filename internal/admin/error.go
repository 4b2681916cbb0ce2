package admin

import "errors"

var (
	// -- Access --
	ErrWrongPassword = errors.New("wrong admin password")
	ErrNotAdmin      = errors.New("admin session required")

	// -- Validation & Input --
	ErrNoImages = errors.New("no images provided")
)
