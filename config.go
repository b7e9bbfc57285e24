package courier

import (
	"time"
)

// Config holds the complete dispatch engine configuration.
type Config struct {
	// MaxRetries is the number of retries per provider attempt sequence.
	// A provider is invoked at most MaxRetries+1 times per send.
	MaxRetries int

	// InitialRetryDelay is the delay before the first retry. The delay
	// doubles after every subsequent failed attempt.
	InitialRetryDelay time.Duration

	// IdempotencyWindow is how long completed task ids should be retained
	// before a housekeeping sweep may evict them. The engine never evicts
	// automatically; the window is consulted only by Sweep.
	IdempotencyWindow time.Duration

	// RateLimitWindow is the time window for the admission counter.
	RateLimitWindow time.Duration

	// MaxRequestsPerWindow is the number of attempt sequences admitted
	// per window, shared across all tasks and providers.
	MaxRequestsPerWindow int

	// CircuitBreakerThreshold is the number of consecutive failures that
	// opens a provider's circuit.
	CircuitBreakerThreshold int

	// CircuitBreakerTimeout is how long an open circuit blocks attempts
	// before a half-open probe is allowed.
	CircuitBreakerTimeout time.Duration

	// CircuitBreakerHalfOpenAttempts bounds the number of probes admitted
	// while a circuit is half-open.
	CircuitBreakerHalfOpenAttempts int

	// Logger receives a record of every state transition. Defaults to a
	// no-op logger.
	Logger Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries:                     3,
		InitialRetryDelay:              100 * time.Millisecond,
		IdempotencyWindow:              24 * time.Hour,
		RateLimitWindow:                time.Second,
		MaxRequestsPerWindow:           10,
		CircuitBreakerThreshold:        3,
		CircuitBreakerTimeout:          5 * time.Second,
		CircuitBreakerHalfOpenAttempts: 1,
		Logger:                         NopLogger(),
	}
}

// Validate checks if the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.MaxRetries < 0 {
		return NewConfigurationError("max_retries", "must not be negative")
	}
	if c.InitialRetryDelay <= 0 {
		return NewConfigurationError("initial_retry_delay", "must be greater than 0")
	}
	if c.RateLimitWindow <= 0 {
		return NewConfigurationError("rate_limit_window", "must be greater than 0")
	}
	if c.MaxRequestsPerWindow <= 0 {
		return NewConfigurationError("max_requests_per_window", "must be greater than 0")
	}
	if c.CircuitBreakerThreshold <= 0 {
		return NewConfigurationError("circuit_breaker_threshold", "must be greater than 0")
	}
	if c.CircuitBreakerTimeout <= 0 {
		return NewConfigurationError("circuit_breaker_timeout", "must be greater than 0")
	}
	if c.CircuitBreakerHalfOpenAttempts <= 0 {
		return NewConfigurationError("circuit_breaker_half_open_attempts", "must be greater than 0")
	}
	return nil
}
