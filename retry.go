package courier

import (
	"fmt"
	"time"
)

// Retrier executes a single operation with exponential backoff. It has no
// knowledge of providers, circuits, or tasks; it retries an arbitrary
// zero-argument operation.
type Retrier struct {
	maxRetries   int
	initialDelay time.Duration
	logger       Logger
}

// NewRetrier creates a retrier that runs an operation at most maxRetries+1
// times, starting the delay schedule at initialDelay.
func NewRetrier(maxRetries int, initialDelay time.Duration, logger Logger) *Retrier {
	if logger == nil {
		logger = NopLogger()
	}
	return &Retrier{
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		logger:       logger,
	}
}

// Execute runs op until it succeeds or the retry budget is spent, returning
// a *RetryExhaustedError wrapping the last failure in the latter case.
//
// The delay between attempt k and k+1 doubles from the previous delay: the
// first retry waits initialDelay, the second 2x, the third 4x, and so on.
// No jitter and no cap; callers bound the total wait via maxRetries. Once an
// attempt has begun it runs to completion; there is no cancellation between
// attempts.
func (r *Retrier) Execute(op func() error) error {
	attempts := r.maxRetries + 1
	delay := r.initialDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		r.logger.Log(fmt.Sprintf("attempt %d/%d", attempt, attempts))

		err := op()
		if err == nil {
			return nil
		}
		lastErr = err
		r.logger.Error(fmt.Sprintf("attempt %d/%d failed: %v", attempt, attempts, err))

		if attempt == attempts {
			break
		}

		time.Sleep(delay)
		delay *= 2
	}

	r.logger.Error(fmt.Sprintf("retries exhausted after %d attempts, last error: %v", attempts, lastErr))
	return &RetryExhaustedError{Attempts: attempts, Cause: lastErr}
}
