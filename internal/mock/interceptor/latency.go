package interceptor

import (
	"context"
	"math/rand/v2"
	"time"

	"aliascore/config"
	"aliascore/internal/errors"
)

// Method names one interceptor call. Values match the keys of mock.latency in config.
type Method string

const (
	MethodAuthenticateWithGoogle Method = "authenticateWithGoogle"
	MethodGetUserProfile         Method = "getUserProfile"
	MethodGetUserDomains         Method = "getUserDomains"
	MethodGetDomainProfile       Method = "getDomainProfile"
	MethodGetEventsForDomain     Method = "getEventsForDomain"
	MethodGetEventsNearLocation  Method = "getEventsNearLocation"
	MethodUpdateUserProfile      Method = "updateUserProfile"
	MethodSignOut                Method = "signOut"
)

// Window bounds a simulated delay, both ends inclusive.
type Window struct {
	Min time.Duration
	Max time.Duration
}

// DefaultWindows are the per-method delays applied when config has no override.
var DefaultWindows = map[Method]Window{
	MethodAuthenticateWithGoogle: {300 * time.Millisecond, 600 * time.Millisecond},
	MethodGetUserProfile:         {200 * time.Millisecond, 800 * time.Millisecond},
	MethodGetUserDomains:         {200 * time.Millisecond, 500 * time.Millisecond},
	MethodGetDomainProfile:       {150 * time.Millisecond, 400 * time.Millisecond},
	MethodGetEventsForDomain:     {300 * time.Millisecond, 700 * time.Millisecond},
	MethodGetEventsNearLocation:  {400 * time.Millisecond, 900 * time.Millisecond},
	MethodUpdateUserProfile:      {200 * time.Millisecond, 500 * time.Millisecond},
	MethodSignOut:                {200 * time.Millisecond, 200 * time.Millisecond},
}

// fallbackWindow applies to methods missing from every table.
var fallbackWindow = Window{200 * time.Millisecond, 800 * time.Millisecond}

// Latency simulates network delay. It draws from math/rand, not the fixture
// generator, so delays never shift fixture determinism.
type Latency struct {
	windows map[Method]Window
	int64N  func(n int64) int64
}

// NewLatency merges overrides (keyed by method name) over DefaultWindows.
// Negative bounds clamp to zero and a Max below Min collapses to Min.
func NewLatency(overrides map[string]config.LatencyWindow) *Latency {
	windows := make(map[Method]Window, len(DefaultWindows))
	for m, w := range DefaultWindows {
		windows[m] = w
	}
	for name, w := range overrides {
		windows[Method(name)] = normalize(Window{Min: w.Min, Max: w.Max})
	}

	return &Latency{windows: windows, int64N: rand.Int64N}
}

// NoLatency returns a Latency that never waits.
func NoLatency() *Latency {
	windows := make(map[Method]Window, len(DefaultWindows))
	for m := range DefaultWindows {
		windows[m] = Window{}
	}

	return &Latency{windows: windows, int64N: rand.Int64N}
}

// Window returns the delay bounds of m.
func (l *Latency) Window(m Method) Window {
	if w, ok := l.windows[m]; ok {
		return w
	}

	return fallbackWindow
}

// Delay draws a delay for m, uniform over whole milliseconds in its window.
func (l *Latency) Delay(m Method) time.Duration {
	w := l.Window(m)
	minMs, maxMs := w.Min.Milliseconds(), w.Max.Milliseconds()
	if maxMs <= minMs {
		return time.Duration(minMs) * time.Millisecond
	}

	return time.Duration(minMs+l.int64N(maxMs-minMs+1)) * time.Millisecond
}

// Wait sleeps for a drawn delay of m, returning early with ctx's error when it is done.
func (l *Latency) Wait(ctx context.Context, m Method) error {
	d := l.Delay(m)
	if d <= 0 {
		return errors.WithStack(ctx.Err())
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func normalize(w Window) Window {
	w.Min = max(w.Min, 0)
	w.Max = max(w.Max, w.Min)

	return w
}
