package courier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryExhaustedError(t *testing.T) {
	cause := errors.New("timeout")
	err := &RetryExhaustedError{Attempts: 4, Cause: cause}

	assert.Contains(t, err.Error(), "4 attempts")
	assert.Contains(t, err.Error(), "timeout")
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRetryExhausted(err))
	assert.False(t, IsRetryExhausted(cause))
}

func TestCircuitOpenError(t *testing.T) {
	err := &CircuitOpenError{Provider: "sendgrid"}

	assert.Contains(t, err.Error(), "sendgrid")
	assert.True(t, IsCircuitOpen(err))
	assert.False(t, IsCircuitOpen(errors.New("other")))
}

func TestAllProvidersFailedErrorWrapsCause(t *testing.T) {
	cause := &CircuitOpenError{Provider: "mailgun"}
	err := &AllProvidersFailedError{TaskID: "t-1", Cause: cause}

	assert.Contains(t, err.Error(), "t-1")
	assert.Contains(t, err.Error(), "mailgun")
	assert.True(t, IsCircuitOpen(err), "the last underlying cause stays reachable through the aggregate")

	exhausted := &AllProvidersFailedError{
		TaskID: "t-2",
		Cause:  &RetryExhaustedError{Attempts: 2, Cause: errors.New("boom")},
	}
	assert.True(t, IsRetryExhausted(exhausted))
}

func TestConfigurationErrorMatching(t *testing.T) {
	err := NewConfigurationError("providers", "at least one provider is required")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "providers")

	var ce *ConfigurationError
	assert.ErrorAs(t, error(err), &ce)
}
