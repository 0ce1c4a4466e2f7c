package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowUntilExhausted(t *testing.T) {
	clock := newTestClock()
	limiter := NewRateLimiter(15*time.Minute, 5)
	limiter.now = clock.Now

	for i := 0; i < 5; i++ {
		allowed, remaining := limiter.Allow("10.0.0.1")
		assert.True(t, allowed, "attempt %d", i+1)
		assert.Equal(t, 4-i, remaining)
	}

	allowed, remaining := limiter.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	clock := newTestClock()
	limiter := NewRateLimiter(15*time.Minute, 5)
	limiter.now = clock.Now

	for i := 0; i < 5; i++ {
		limiter.Allow("10.0.0.2")
	}
	allowed, _ := limiter.Allow("10.0.0.2")
	assert.False(t, allowed)

	clock.Advance(16 * time.Minute)

	allowed, remaining := limiter.Allow("10.0.0.2")
	assert.True(t, allowed)
	assert.Equal(t, 4, remaining)
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	clock := newTestClock()
	limiter := NewRateLimiter(15*time.Minute, 1)
	limiter.now = clock.Now

	allowed, _ := limiter.Allow("10.0.0.3")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.3")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow("10.0.0.4")
	assert.True(t, allowed)
}

func TestRateLimiter_Sweep(t *testing.T) {
	clock := newTestClock()
	limiter := NewRateLimiter(15*time.Minute, 5)
	limiter.now = clock.Now

	limiter.Allow("10.0.0.5")
	clock.Advance(16 * time.Minute)
	limiter.Sweep()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Empty(t, limiter.entries)
}
