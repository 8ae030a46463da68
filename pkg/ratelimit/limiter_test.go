package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowUpToMax(t *testing.T) {
	limiter := NewLimiter()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("user@example.com", 3, time.Minute), "attempt %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("user@example.com", 3, time.Minute))
}

func TestKeysAreIndependent(t *testing.T) {
	limiter := NewLimiter()

	assert.True(t, limiter.Allow("a", 1, time.Minute))
	assert.False(t, limiter.Allow("a", 1, time.Minute))
	assert.True(t, limiter.Allow("b", 1, time.Minute))
}

func TestResetClearsKey(t *testing.T) {
	limiter := NewLimiter()

	assert.True(t, limiter.Allow("a", 1, time.Minute))
	assert.False(t, limiter.Allow("a", 1, time.Minute))

	limiter.Reset("a")
	assert.True(t, limiter.Allow("a", 1, time.Minute))
}

func TestWindowSlides(t *testing.T) {
	limiter := NewLimiter()

	assert.True(t, limiter.Allow("a", 1, 10*time.Millisecond))
	assert.False(t, limiter.Allow("a", 1, 10*time.Millisecond))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, limiter.Allow("a", 1, 10*time.Millisecond))
}
