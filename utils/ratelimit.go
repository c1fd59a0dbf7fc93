package utils

import (
	"sync"
	"time"
)

// RateLimiter allows a fixed number of uses of a command per user within a
// period, like a per-user command cooldown.
type RateLimiter struct {
	rate   int
	period time.Duration
	limits map[string]*userLimit
	mu     sync.Mutex
	now    func() time.Time
}

// userLimit tracks rate limiting for a specific user
type userLimit struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter creates a rate limiter allowing rate uses per period.
func NewRateLimiter(rate int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		rate:   rate,
		period: period,
		limits: make(map[string]*userLimit),
		now:    time.Now,
	}
}

// Allow checks if a user is allowed to execute a command
// Returns true if allowed, false if rate limited
func (rl *RateLimiter) Allow(userID, command string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	key := userID + ":" + command
	now := rl.now()

	limit, exists := rl.limits[key]
	if !exists || now.Sub(limit.windowStart) >= rl.period {
		rl.limits[key] = &userLimit{windowStart: now, count: 1}
		return true
	}

	if limit.count >= rl.rate {
		return false
	}

	limit.count++
	return true
}

// RetryAfter returns how long until the user can run the command again.
func (rl *RateLimiter) RetryAfter(userID, command string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, exists := rl.limits[userID+":"+command]
	if !exists || limit.count < rl.rate {
		return 0
	}

	elapsed := rl.now().Sub(limit.windowStart)
	if elapsed >= rl.period {
		return 0
	}
	return rl.period - elapsed
}

// Prune drops windows that have expired.
func (rl *RateLimiter) Prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, limit := range rl.limits {
		if now.Sub(limit.windowStart) >= rl.period {
			delete(rl.limits, key)
		}
	}
}
