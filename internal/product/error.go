package product

import "errors"

var (
	// -- Lookup --
	ErrProductNotFound = errors.New("product not found")

	// -- Validation & Input --
	ErrTitlePriceRequired = errors.New("title and price are required")
	ErrNothingToUpdate    = errors.New("no products selected or no fields to update")
	ErrInvalidStock       = errors.New("stock cannot be negative")
)
