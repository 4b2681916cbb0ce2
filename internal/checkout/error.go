package checkout

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidContact  = errors.New("name and a phone of at least 9 characters are required")
	ErrMissingLocation = errors.New("wilaya and commune are required")
	ErrEmptyCart       = errors.New("bag is empty")

	// -- Flow --
	ErrAlreadySubmitting = errors.New("order is already being submitted")
)

// messageKeys maps each validation failure to the i18n key shown to the user.
var messageKeys = map[error]string{
	ErrInvalidContact:  "fill_details",
	ErrMissingLocation: "select_location",
	ErrEmptyCart:       "bag_empty",
}
