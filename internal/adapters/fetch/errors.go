package fetch

import "errors"

// Sentinel kinds for fetch coordination errors.
var (
	// ErrSuperseded marks a response that arrived after a newer refresh
	// started. Callers discard the response and wait for the newer one.
	ErrSuperseded = errors.New("fetch superseded by newer request")
)
