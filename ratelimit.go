package courier

import (
	"sync"
	"time"
)

// RateLimiter is the admission controller gating the start of new attempt
// sequences. It keeps one process-wide window of accepted-attempt
// timestamps, shared across all tasks and providers.
//
// This is a fixed-window counter, not an exact sliding log: bursts at
// window boundaries can momentarily exceed the nominal rate by up to 2x.
type RateLimiter struct {
	window time.Duration
	max    int
	logger Logger

	mu       sync.Mutex
	accepted []time.Time
}

// NewRateLimiter creates an admission controller allowing max attempt
// sequences per window.
func NewRateLimiter(max int, window time.Duration, logger Logger) *RateLimiter {
	if logger == nil {
		logger = NopLogger()
	}
	return &RateLimiter{
		window: window,
		max:    max,
		logger: logger,
	}
}

// TryAdmit prunes timestamps older than the window and reports whether a
// new attempt sequence may begin now. Admission records the current time;
// denial records nothing. The check and the record are a single step with
// respect to concurrent callers.
func (rl *RateLimiter) TryAdmit() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	kept := rl.accepted[:0]
	for _, ts := range rl.accepted {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	rl.accepted = kept

	if len(rl.accepted) >= rl.max {
		rl.logger.Log("rate limit reached, admission denied")
		return false
	}

	rl.accepted = append(rl.accepted, now)
	return true
}

// InWindow returns the number of attempts currently counted against the
// window.
func (rl *RateLimiter) InWindow() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)
	n := 0
	for _, ts := range rl.accepted {
		if ts.After(cutoff) {
			n++
		}
	}
	return n
}
