package rate_limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_BurstThenReject(t *testing.T) {
	l := New(0.001, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "clients have separate buckets")
}

func TestLimiter_CleanupDropsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New(1, 1)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(time.Minute)
	l.Allow("b")
	assert.Equal(t, 2, l.Len())

	now = now.Add(idleTTL)
	l.Cleanup()
	assert.Equal(t, 1, l.Len())

	now = now.Add(2 * time.Minute)
	l.Cleanup()
	assert.Equal(t, 0, l.Len())
}
