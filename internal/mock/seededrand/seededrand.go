// Package seededrand is a deterministic linear congruential generator.
//
// The recurrence is state = (1664525*state + 1013904223) mod 2^32. It runs on
// uint32 arithmetic only, so a seed yields the same sequence on every platform.
// Fixtures depend on the exact order of draws: changing how many values a
// caller consumes changes everything generated after it.
package seededrand

import (
	"math"
	"unicode/utf16"
)

const (
	multiplier uint32 = 1664525
	increment  uint32 = 1013904223
	modulus           = 1 << 32

	// DefaultSeed is the seed used when none is configured.
	DefaultSeed uint32 = 20250101
)

// Rand is a seeded LCG. It is not safe for concurrent use.
type Rand struct {
	state uint32
}

// New creates a generator starting from seed.
func New(seed uint32) *Rand {
	return &Rand{state: seed}
}

// NewDefault creates a generator starting from DefaultSeed.
func NewDefault() *Rand {
	return New(DefaultSeed)
}

// Next advances the generator and returns a float64 in [0, 1).
func (r *Rand) Next() float64 {
	r.state = multiplier*r.state + increment

	return float64(r.state) / modulus
}

// NextInt returns an integer in [min, max], both inclusive. The span is
// computed in float64 so ranges wider than MaxInt stay in bounds.
func (r *Rand) NextInt(min, max int) int {
	span := float64(max) - float64(min) + 1
	v := math.Floor(r.Next()*span) + float64(min)

	switch {
	case v >= float64(max):
		return max
	case v <= float64(min):
		return min
	default:
		return int(v)
	}
}

// NextFloat returns a float64 in [min, max).
func (r *Rand) NextFloat(min, max float64) float64 {
	return r.Next()*(max-min) + min
}

// Seed returns the current internal state.
func (r *Rand) Seed() uint32 {
	return r.state
}

// Reset restarts the generator from seed.
func (r *Rand) Reset(seed uint32) {
	r.state = seed
}

// Derive returns a new generator seeded from key alone; the receiver's state
// is neither read nor advanced. Keys are hashed with a 31-multiplier rolling
// hash over UTF-16 code units with int32 wraparound, and the absolute value
// becomes the seed.
func (r *Rand) Derive(key string) *Rand {
	return New(HashKey(key))
}

// HashKey is the seed Derive uses for key.
func HashKey(key string) uint32 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(key)) {
		hash = hash*31 + int32(unit)
	}

	// |math.MinInt32| does not fit in int32 but does in uint32.
	if hash < 0 {
		return uint32(-int64(hash))
	}

	return uint32(hash)
}

// Pick returns a uniformly chosen element of items. It always consumes exactly
// one draw, and yields the zero value for an empty slice.
func Pick[T any](r *Rand, items []T) T {
	idx := r.NextInt(0, len(items)-1)

	var zero T
	if idx < 0 || idx >= len(items) {
		return zero
	}

	return items[idx]
}

// Shuffle returns a Fisher-Yates shuffled copy of items.
func Shuffle[T any](r *Rand, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.NextInt(0, i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
