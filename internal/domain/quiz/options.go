package quiz

import (
	"time"

	"github.com/okian/reelmatch/internal/domain/ids"
	"github.com/okian/reelmatch/pkg/logger"
)

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator sets the generator for attempt IDs.
func WithIDGenerator(g ids.Generator) Option {
	return func(e *Engine) {
		if g != nil {
			e.ids = g
		}
	}
}

// WithClock sets the source of completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l.Named("quiz")
		}
	}
}
