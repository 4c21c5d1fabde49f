package csvio

import "errors"

// Sentinel kinds for CSV adapter errors.
var (
	ErrMissingHeader = errors.New("missing required header")
)
