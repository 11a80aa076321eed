// Package factory builds fixture records for local-only development.
//
// Factories are deterministic for a given seed and call sequence. Each method
// documents the generator draws it makes; keep that order stable or persisted
// fixtures and test goldens drift.
package factory

import (
	"time"

	"aliascore/internal/mock/seededrand"
)

// Clock returns the current time. Factories stamp records with it.
type Clock func() time.Time

func resolve(rng *seededrand.Rand, clock Clock) (*seededrand.Rand, Clock) {
	if rng == nil {
		rng = seededrand.NewDefault()
	}
	if clock == nil {
		clock = time.Now
	}

	return rng, clock
}

// timestamp truncates to milliseconds in UTC so records survive a JSON round trip unchanged.
func timestamp(clock Clock) time.Time {
	return clock().UTC().Truncate(time.Millisecond)
}

func ptr[T any](v T) *T {
	return &v
}
