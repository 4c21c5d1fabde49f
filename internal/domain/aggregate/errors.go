package aggregate

import "errors"

// Sentinel kinds for aggregation errors.
var (
	ErrInvalidFieldPolicy = errors.New("invalid field policy")
)
