package courier

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures log records for assertions.
type recordingLogger struct {
	mu     sync.Mutex
	logs   []string
	errors []string
}

func (l *recordingLogger) Log(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, message)
}

func (l *recordingLogger) Error(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, message)
}

func (l *recordingLogger) countContaining(records []string, substr string) int {
	n := 0
	for _, r := range records {
		if strings.Contains(r, substr) {
			n++
		}
	}
	return n
}

func (l *recordingLogger) logsContaining(substr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.countContaining(l.logs, substr)
}

func (l *recordingLogger) errorsContaining(substr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.countContaining(l.errors, substr)
}

func TestRetrierSucceedsFirstAttempt(t *testing.T) {
	r := NewRetrier(3, time.Millisecond, NopLogger())

	calls := 0
	err := r.Execute(func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetrierRetriesUntilSuccess(t *testing.T) {
	r := NewRetrier(3, time.Millisecond, NopLogger())

	calls := 0
	err := r.Execute(func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetrierExhausted(t *testing.T) {
	r := NewRetrier(2, time.Millisecond, NopLogger())

	cause := errors.New("provider down")
	calls := 0
	err := r.Execute(func() error {
		calls++
		return cause
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls, "maxRetries+1 total attempts")

	var exhausted *RetryExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "provider down")
}

func TestRetrierDelayDoubles(t *testing.T) {
	initial := 10 * time.Millisecond
	r := NewRetrier(2, initial, NopLogger())

	start := time.Now()
	err := r.Execute(func() error {
		return errors.New("always")
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	// Two delays: initial, then doubled.
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestRetrierLogsAttemptsAndExhaustion(t *testing.T) {
	logger := &recordingLogger{}
	r := NewRetrier(1, time.Millisecond, logger)

	err := r.Execute(func() error {
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 2, logger.logsContaining("attempt"))
	assert.Equal(t, 2, logger.errorsContaining("failed"))
	assert.Equal(t, 1, logger.errorsContaining("exhausted"))
	// Per-attempt failures and the final exhaustion all carry the cause.
	assert.Equal(t, 3, logger.errorsContaining("boom"))
}
