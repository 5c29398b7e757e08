// Package sampler provides duration sampling from configured ranges.
//
// The simulation core consumes a "sample a duration from a range"
// capability; how the ranges are tuned lives in config, not here.
package sampler

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ErrInvalidRange indicates a range with Min > Max or a non-positive bound.
var ErrInvalidRange = errors.New("invalid duration range")

// Range is a closed interval of durations.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Fixed returns a degenerate range that always samples d.
func Fixed(d time.Duration) Range {
	return Range{Min: d, Max: d}
}

// Validate checks that the range is well-formed.
func (r Range) Validate() error {
	if r.Min <= 0 || r.Max <= 0 {
		return fmt.Errorf("%w: bounds must be positive, got [%v, %v]", ErrInvalidRange, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Sampler draws durations from ranges. Safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a sampler. A zero seed picks a time-based seed; any other
// value makes the sequence reproducible.
func New(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // G404: simulation timing, not cryptography
}

// Duration samples uniformly from r. The caller is expected to have
// validated r; a degenerate range returns Min.
func (s *Sampler) Duration(r Range) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.Min + time.Duration(s.rng.Int63n(int64(r.Max-r.Min)+1))
}
