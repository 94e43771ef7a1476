package generator

import (
	"math/rand"
	"sync"
	"time"
)

// Source draws uniform integers from the inclusive range [min, max].
type Source interface {
	Between(min, max int) int
}

// RandSource is a Source backed by math/rand. It is safe for concurrent use.
type RandSource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewSeededSource returns a reproducible source.
func NewSeededSource(seed int64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// NewSource returns a source seeded from the wall clock.
func NewSource() *RandSource {
	return NewSeededSource(time.Now().UnixNano())
}

// Seed reports the seed the source was created with.
func (s *RandSource) Seed() int64 {
	return s.seed
}

// Between implements Source. A reversed range yields min.
func (s *RandSource) Between(min, max int) int {
	if max < min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

// SequenceSource replays scripted values, clamped into the requested range.
// Once exhausted it returns the lower bound.
type SequenceSource struct {
	values []int
	pos    int
}

// NewSequenceSource builds a SequenceSource from the given values.
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: values}
}

// Between implements Source.
func (s *SequenceSource) Between(min, max int) int {
	if s.pos >= len(s.values) {
		return min
	}
	v := s.values[s.pos]
	s.pos++
	if v < min {
		return min
	}
	if max >= min && v > max {
		return max
	}
	return v
}

// Remaining reports how many scripted values have not been consumed.
func (s *SequenceSource) Remaining() int {
	return len(s.values) - s.pos
}
