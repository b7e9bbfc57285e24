package courier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAdmitsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Second, NopLogger())

	assert.True(t, rl.TryAdmit())
	assert.True(t, rl.TryAdmit())
	assert.True(t, rl.TryAdmit())
	assert.False(t, rl.TryAdmit())
	assert.Equal(t, 3, rl.InWindow())
}

func TestRateLimiterDenialRecordsNothing(t *testing.T) {
	rl := NewRateLimiter(1, time.Second, NopLogger())

	assert.True(t, rl.TryAdmit())
	assert.False(t, rl.TryAdmit())
	assert.False(t, rl.TryAdmit())
	assert.Equal(t, 1, rl.InWindow())
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 40*time.Millisecond, NopLogger())

	assert.True(t, rl.TryAdmit())
	assert.False(t, rl.TryAdmit())

	time.Sleep(60 * time.Millisecond)

	assert.True(t, rl.TryAdmit(), "expired timestamps are pruned on check")
	assert.Equal(t, 1, rl.InWindow())
}

func TestRateLimiterLogsDenial(t *testing.T) {
	logger := &recordingLogger{}
	rl := NewRateLimiter(1, time.Second, logger)

	rl.TryAdmit()
	rl.TryAdmit()

	assert.Equal(t, 1, logger.logsContaining("rate limit"))
}
