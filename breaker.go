package courier

import (
	"fmt"
	"sync"
	"time"
)

// CircuitState represents the state of a single provider's circuit.
type CircuitState int

const (
	// CircuitClosed indicates normal operation.
	CircuitClosed CircuitState = iota

	// CircuitOpen indicates the provider is blocked from attempts.
	CircuitOpen

	// CircuitHalfOpen indicates a bounded number of probe attempts is
	// allowed to test provider recovery. The consecutive-failure count is
	// retained from the open period.
	CircuitHalfOpen
)

// String returns the string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// circuit holds the breaker state for one provider.
type circuit struct {
	state          CircuitState
	failures       int
	lastFailure    time.Time
	halfOpenProbes int
}

// CircuitBreakerRegistry tracks one failure/success state machine per
// provider handle, independent of other providers. One broken provider
// never blocks traffic meant for a healthy one. Safe for concurrent use.
type CircuitBreakerRegistry struct {
	threshold        int
	timeout          time.Duration
	halfOpenAttempts int
	logger           Logger
	names            []string

	mu       sync.Mutex
	circuits []circuit
}

// NewCircuitBreakerRegistry creates a registry with one closed circuit per
// provider name. Provider handles are indices into names, issued in order.
func NewCircuitBreakerRegistry(names []string, threshold int, timeout time.Duration, halfOpenAttempts int, logger Logger) *CircuitBreakerRegistry {
	if logger == nil {
		logger = NopLogger()
	}
	return &CircuitBreakerRegistry{
		threshold:        threshold,
		timeout:          timeout,
		halfOpenAttempts: halfOpenAttempts,
		logger:           logger,
		names:            names,
		circuits:         make([]circuit, len(names)),
	}
}

// IsBlocking reports whether the provider's circuit currently blocks
// attempts: true iff the circuit is open and its timeout has not elapsed.
// If the timeout has elapsed while open, the circuit transitions to
// half-open before returning false, and the caller's subsequent attempt is
// treated as the probe.
func (r *CircuitBreakerRegistry) IsBlocking(handle int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cb := &r.circuits[handle]
	switch cb.state {
	case CircuitClosed:
		return false
	case CircuitOpen:
		if time.Since(cb.lastFailure) < r.timeout {
			return true
		}
		cb.state = CircuitHalfOpen
		cb.halfOpenProbes = 1
		r.logger.Log(fmt.Sprintf("circuit half-open for provider %s, allowing probe", r.names[handle]))
		return false
	case CircuitHalfOpen:
		if cb.halfOpenProbes < r.halfOpenAttempts {
			cb.halfOpenProbes++
			return false
		}
		return true
	default:
		return true
	}
}

// RecordFailure increments the provider's consecutive-failure count and
// stamps the failure time. Reaching the threshold opens the circuit; a
// failed half-open probe reopens it and restarts the timeout from this new
// failure. Idempotent if the circuit is already open.
func (r *CircuitBreakerRegistry) RecordFailure(handle int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cb := &r.circuits[handle]
	cb.failures++
	cb.lastFailure = time.Now()

	switch cb.state {
	case CircuitHalfOpen:
		cb.state = CircuitOpen
		r.logger.Error(fmt.Sprintf("probe failed, circuit reopened for provider %s", r.names[handle]))
	case CircuitClosed:
		if cb.failures >= r.threshold {
			cb.state = CircuitOpen
			r.logger.Error(fmt.Sprintf("circuit opened for provider %s after %d consecutive failures", r.names[handle], cb.failures))
		}
	}
}

// RecordSuccess resets the provider's consecutive-failure count and closes
// the circuit unconditionally. A single success always fully closes the
// circuit, regardless of how many failures preceded it.
func (r *CircuitBreakerRegistry) RecordSuccess(handle int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cb := &r.circuits[handle]
	if cb.state != CircuitClosed {
		r.logger.Log(fmt.Sprintf("circuit closed for provider %s", r.names[handle]))
	}
	cb.state = CircuitClosed
	cb.failures = 0
	cb.halfOpenProbes = 0
}

// State returns the current state of the provider's circuit.
func (r *CircuitBreakerRegistry) State(handle int) CircuitState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.circuits[handle].state
}

// Failures returns the provider's current consecutive-failure count.
func (r *CircuitBreakerRegistry) Failures(handle int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.circuits[handle].failures
}
