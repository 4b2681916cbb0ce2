package realtime

import (
	"errors"
	"fmt"
	"strings"
)

// CodePermissionDenied is the error code the hosted database reports when its
// security rules reject a read or a write.
const CodePermissionDenied = "PERMISSION_DENIED"

var (
	// -- Rules --
	ErrPermissionDenied = errors.New("permission denied")

	// -- Input --
	ErrInvalidPath  = errors.New("invalid database path")
	ErrInvalidValue = errors.New("value is not JSON encodable")

	// -- Transport --
	ErrUnavailable = errors.New("database unavailable")
	ErrClosed      = errors.New("database client closed")
)

// Error is a failure reported by a backend together with its wire code.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("realtime: %s", e.Code)
	}
	return fmt.Sprintf("realtime: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode exposes the wire code to callers that only know the interface.
func (e *Error) ErrorCode() string {
	return e.Code
}

func permissionDenied(msg string) error {
	return &Error{Code: CodePermissionDenied, Message: msg, Err: ErrPermissionDenied}
}

// IsPermissionDenied reports whether err is a rules rejection. Besides the sentinel
// and the PERMISSION_DENIED code it accepts any error whose message mentions
// "permission", since SDKs and proxies word the failure differently.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPermissionDenied) {
		return true
	}

	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) && coded.ErrorCode() == CodePermissionDenied {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "permission")
}
