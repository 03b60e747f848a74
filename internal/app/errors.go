package service

import "errors"

// Sentinel errors returned by Service operations.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrLimitExceeded = errors.New("rank limit exceeded")
	ErrGroupTooLarge = errors.New("group too large")
)
