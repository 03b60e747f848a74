package scoring

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidWeights = errors.New("invalid scoring weights")
	ErrNoSwipeData    = errors.New("no liked swipes to analyze")

	errAnalyzerAborted = errors.New("swipe analyzer aborted")
)
