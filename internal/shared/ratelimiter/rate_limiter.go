// Package ratelimiter limits how often a caller may perform an operation.
package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether one more call under key fits the current window.
// When it does not, retryAfter tells the caller how long the window has left.
type Limiter interface {
	Allow(ctx context.Context, key string) (ok bool, retryAfter time.Duration, err error)
}

type window struct {
	count int
	start time.Time
}

// RateLimiter is an in-process fixed-window limiter keyed by caller.
type RateLimiter struct {
	limit    int           // calls allowed per interval
	interval time.Duration // window length

	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a RateLimiter allowing limit calls per interval and key.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow counts one call for key.
func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.interval {
		w = &window{start: now}
		rl.windows[key] = w
	}

	w.count++
	if w.count > rl.limit {
		return false, rl.interval - now.Sub(w.start), nil
	}
	return true, 0, nil
}

// Sweep drops windows that have ended. Call it periodically to bound memory.
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for k, w := range rl.windows {
		if now.Sub(w.start) >= rl.interval {
			delete(rl.windows, k)
			removed++
		}
	}
	return removed
}
