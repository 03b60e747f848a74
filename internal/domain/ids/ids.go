// Package ids provides the identifier generators injected into the matching
// core. Production code uses UUIDs; tests use a sequence to assert exact IDs.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique identifiers.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() string

// NewID implements Generator.
func (f GeneratorFunc) NewID() string { return f() }

// UUID generates random (v4) UUID strings.
type UUID struct{}

// NewID implements Generator.
func (UUID) NewID() string { return uuid.NewString() }

// Sequence generates prefix-1, prefix-2, ... and is safe for concurrent use.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence returns a sequence generator with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1))
}
