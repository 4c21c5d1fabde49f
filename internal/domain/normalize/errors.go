package normalize

import (
	"errors"
	"fmt"
)

// ErrRejected is the base kind for every normalization rejection. Callers
// filter on it with errors.Is without caring about the specific reason.
var ErrRejected = errors.New("name rejected")

// Specific rejection reasons, each wrapping ErrRejected.
var (
	ErrEmptyName      = fmt.Errorf("%w: empty after cleaning", ErrRejected)
	ErrPlaceholder    = fmt.Errorf("%w: placeholder token", ErrRejected)
	ErrNoAlphabetic   = fmt.Errorf("%w: no alphabetic characters", ErrRejected)
	ErrTooManyWords   = fmt.Errorf("%w: too many words for a name", ErrRejected)
	ErrTelephoneEntry = fmt.Errorf("%w: telephone entry in name column", ErrRejected)
)
