package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window counter keyed by an arbitrary string. The auth
// flow keys it by email, once for code sends and once for verify attempts.
type Limiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func NewLimiter() *Limiter {
	l := &Limiter{
		attempts: make(map[string][]time.Time),
	}
	go l.cleanup()
	return l
}

func (l *Limiter) Allow(key string, maxAttempts int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	recent := pruneBefore(l.attempts[key], now.Add(-window))

	if len(recent) >= maxAttempts {
		l.attempts[key] = recent
		return false
	}

	l.attempts[key] = append(recent, now)
	return true
}

func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

func pruneBefore(timestamps []time.Time, cutoff time.Time) []time.Time {
	var kept []time.Time
	for _, t := range timestamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (l *Limiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-24 * time.Hour)
		for key, timestamps := range l.attempts {
			kept := pruneBefore(timestamps, cutoff)
			if len(kept) == 0 {
				delete(l.attempts, key)
			} else {
				l.attempts[key] = kept
			}
		}
		l.mu.Unlock()
	}
}
