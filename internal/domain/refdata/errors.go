package refdata

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidQuestionBank = errors.New("invalid question bank")
	ErrLoadQuestionBank    = errors.New("load question bank failed")
)
