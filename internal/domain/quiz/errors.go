package quiz

import "errors"

// Sentinel error kinds for this package.
var (
	ErrMissingUserID = errors.New("quiz attempt requires a user id")
)
