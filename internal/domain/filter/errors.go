package filter

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidFilter = errors.New("invalid filter")
)
