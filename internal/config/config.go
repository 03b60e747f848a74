// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"runtime"

	"github.com/okian/reelmatch/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ShutdownTimeoutSeconds bounds graceful HTTP shutdown.
	ShutdownTimeoutSeconds int `koanf:"shutdown_timeout_seconds"`

	// RankConcurrency bounds how many candidates are scored in parallel.
	RankConcurrency int `koanf:"rank_concurrency"`

	// DefaultRankLimit applies when a rank request omits its limit.
	DefaultRankLimit int `koanf:"default_rank_limit"`

	// MaxRankLimit caps the limit a rank request may ask for.
	MaxRankLimit int `koanf:"max_rank_limit"`

	// QuestionBankPath optionally replaces the built-in quiz questions with a YAML bank.
	QuestionBankPath string `koanf:"question_bank_path"`

	// Weights is the pairwise scoring weight table.
	Weights scoring.Weights `koanf:"weights"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		ShutdownTimeoutSeconds: 10,
		RankConcurrency:        runtime.NumCPU(),
		DefaultRankLimit:       20,
		MaxRankLimit:           100,
		Weights:                scoring.DefaultWeights(),
	}
}

// Validate checks the values a running service depends on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RankConcurrency <= 0:
		return fmt.Errorf("%w: rank_concurrency must be positive", ErrInvalidConfig)
	case c.MaxRankLimit <= 0:
		return fmt.Errorf("%w: max_rank_limit must be positive", ErrInvalidConfig)
	case c.DefaultRankLimit <= 0 || c.DefaultRankLimit > c.MaxRankLimit:
		return fmt.Errorf("%w: default_rank_limit must be between 1 and max_rank_limit", ErrInvalidConfig)
	case c.ShutdownTimeoutSeconds < 0:
		return fmt.Errorf("%w: shutdown_timeout_seconds must not be negative", ErrInvalidConfig)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
