package store

import "errors"

// Sentinel kinds for results store errors.
var (
	ErrUnavailable = errors.New("results store unavailable")
	ErrBadStatus   = errors.New("results store rejected request")
	ErrDecode      = errors.New("results store returned malformed payload")
)
