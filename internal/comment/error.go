package comment

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyComment = errors.New("comment text is empty")
	ErrNoProduct    = errors.New("product id is required")
)
