package imaging

import "errors"

var (
	// -- Validation & Input --
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")
	ErrTooLarge         = errors.New("image exceeds upload limit")
	ErrTooManyPixels    = errors.New("image dimensions exceed pixel limit")
)
