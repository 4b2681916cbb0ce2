package config

import "errors"

var (
	// -- Validation & Input --
	ErrUnknownBackend     = errors.New("REALTIME_BACKEND must be memory, firebase or postgres")
	ErrMissingFirebaseURL = errors.New("FIREBASE_DATABASE_URL is required for the firebase backend")
	ErrMissingDatabase    = errors.New("DB_HOST and DB_NAME are required for the postgres backend")
	ErrMissingSecret      = errors.New("SESSION_SECRET is required in production")
	ErrInvalidTimeout     = errors.New("HTTP_TIMEOUT must be a positive duration")
	ErrInvalidTimezone    = errors.New("EXPORT_TIMEZONE is not a known location")
)
