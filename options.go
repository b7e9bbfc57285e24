package courier

import (
	"time"

	"go.uber.org/zap"
)

// Option is a functional option for configuring the dispatch engine.
type Option func(*Config)

// WithRetry configures the per-provider retry budget and initial delay.
func WithRetry(maxRetries int, initialDelay time.Duration) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.InitialRetryDelay = initialDelay
	}
}

// WithoutRetry disables retries; each provider is invoked exactly once.
func WithoutRetry() Option {
	return func(c *Config) {
		c.MaxRetries = 0
	}
}

// WithRateLimit configures the admission window and its request budget.
func WithRateLimit(maxRequests int, window time.Duration) Option {
	return func(c *Config) {
		c.MaxRequestsPerWindow = maxRequests
		c.RateLimitWindow = window
	}
}

// WithCircuitBreaker configures per-provider circuit breaking.
func WithCircuitBreaker(failureThreshold int, timeout time.Duration) Option {
	return func(c *Config) {
		c.CircuitBreakerThreshold = failureThreshold
		c.CircuitBreakerTimeout = timeout
	}
}

// WithHalfOpenAttempts bounds the number of probes admitted while a
// circuit is half-open.
func WithHalfOpenAttempts(attempts int) Option {
	return func(c *Config) {
		c.CircuitBreakerHalfOpenAttempts = attempts
	}
}

// WithIdempotencyWindow sets the retention window consulted by Sweep.
func WithIdempotencyWindow(window time.Duration) Option {
	return func(c *Config) {
		c.IdempotencyWindow = window
	}
}

// WithLogger sets the logger that receives state transition records.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithZapLogger routes state transition records to a zap logger.
func WithZapLogger(logger *zap.Logger) Option {
	return WithLogger(NewZapLogger(logger))
}
