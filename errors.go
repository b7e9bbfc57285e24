package courier

import (
	"errors"
	"fmt"
)

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("client closed")

// ConfigurationError indicates an invalid or incomplete configuration.
type ConfigurationError struct {
	// Field is the configuration field at fault.
	Field string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
}

// Is implements error matching for errors.Is.
func (e *ConfigurationError) Is(target error) bool {
	_, ok := target.(*ConfigurationError)
	return ok
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}

// RetryExhaustedError indicates a provider's full retry budget was spent
// without a successful attempt.
type RetryExhaustedError struct {
	// Attempts is the total number of attempts made.
	Attempts int

	// Cause is the error returned by the final attempt.
	Cause error
}

// Error implements the error interface.
func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("operation failed after %d attempts: %v", e.Attempts, e.Cause)
}

// Unwrap returns the final attempt's error.
func (e *RetryExhaustedError) Unwrap() error {
	return e.Cause
}

// CircuitOpenError indicates a provider was skipped without an attempt
// because its circuit is open.
type CircuitOpenError struct {
	// Provider is the name of the skipped provider.
	Provider string
}

// Error implements the error interface.
func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit breaker open for provider %s", e.Provider)
}

// AllProvidersFailedError is the terminal failure for a send: every eligible
// provider was skipped or exhausted.
type AllProvidersFailedError struct {
	// TaskID is the id of the failed task.
	TaskID string

	// Cause is the last underlying failure observed across providers.
	Cause error
}

// Error implements the error interface.
func (e *AllProvidersFailedError) Error() string {
	return fmt.Sprintf("all providers failed for task %s: %v", e.TaskID, e.Cause)
}

// Unwrap returns the last underlying failure.
func (e *AllProvidersFailedError) Unwrap() error {
	return e.Cause
}

// IsCircuitOpen reports whether err indicates a provider skipped on an
// open circuit.
func IsCircuitOpen(err error) bool {
	var ce *CircuitOpenError
	return errors.As(err, &ce)
}

// IsRetryExhausted reports whether err indicates a spent retry budget.
func IsRetryExhausted(err error) bool {
	var re *RetryExhaustedError
	return errors.As(err, &re)
}
