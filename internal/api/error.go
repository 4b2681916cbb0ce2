package api

import "errors"

var (
	// -- Validation & Input --
	errBadRequest = errors.New("malformed request")
)
