package security

import (
	"sync"
	"time"
)

// RateLimiter is a fixed-window per-key request limiter used on the login
// route. Per-process counters only; a multi-node deployment would need a
// shared store, which this deliberately does not attempt.
type RateLimiter struct {
	window time.Duration
	max    int
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:  window,
		max:     max,
		now:     time.Now,
		entries: make(map[string]*rateLimitEntry),
	}
}

// Allow consumes one slot for the key and reports whether the request may
// proceed, along with the remaining budget in the current window.
func (r *RateLimiter) Allow(key string) (bool, int) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[key]
	if !exists || entry.resetTime.Before(now) {
		r.entries[key] = &rateLimitEntry{count: 1, resetTime: now.Add(r.window)}
		return true, r.max - 1
	}

	if entry.count >= r.max {
		return false, 0
	}
	entry.count++
	return true, r.max - entry.count
}

// Sweep drops expired windows.
func (r *RateLimiter) Sweep() {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, entry := range r.entries {
		if entry.resetTime.Before(now) {
			delete(r.entries, key)
		}
	}
}
