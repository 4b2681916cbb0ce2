package cart

import "errors"

var (
	// -- Validation & Input --
	ErrIndexOutOfRange = errors.New("cart index out of range")
	ErrInvalidItem     = errors.New("cart item needs an id and a price")
)
