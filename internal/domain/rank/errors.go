package rank

import "errors"

// Sentinel kinds for ranking errors.
var (
	// ErrInvalidSortKey is returned for a sort key outside the supported
	// set. Callers fail fast on it before any input is read.
	ErrInvalidSortKey = errors.New("invalid sort key")
)
