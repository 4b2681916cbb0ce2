package order

import "errors"

var (
	// -- Lookup --
	ErrOrderNotFound = errors.New("order not found")

	// -- Validation & Input --
	ErrPhoneRequired = errors.New("phone number is required")
)
