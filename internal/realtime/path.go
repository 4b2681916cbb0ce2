package realtime

import (
	"fmt"
	"strings"
)

// Join builds a slash separated path, ignoring empty segments.
func Join(parts ...string) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			segs = append(segs, p)
		}
	}
	return strings.Join(segs, "/")
}

// Split returns the segments of a path. The root path has no segments.
func Split(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, nil
	}

	parts := strings.Split(path, "/")
	for _, p := range parts {
		if err := ValidateKey(p); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return parts, nil
}

// ValidateKey rejects keys the hosted database refuses: empty keys and keys that
// contain '.', '#', '$', '[', ']' or control characters.
func ValidateKey(key string) error {
	if key == "" {
		return ErrInvalidPath
	}
	for _, r := range key {
		switch {
		case r == '.', r == '#', r == '$', r == '[', r == ']', r == '/':
			return ErrInvalidPath
		case r < 0x20 || r == 0x7f:
			return ErrInvalidPath
		}
	}
	return nil
}

// isRelated reports whether a write at written can change the value at watched,
// i.e. one path is a prefix of the other.
func isRelated(watched, written []string) bool {
	n := len(watched)
	if len(written) < n {
		n = len(written)
	}
	for i := 0; i < n; i++ {
		if watched[i] != written[i] {
			return false
		}
	}
	return true
}
