// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package security

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-identity sliding window request limit.
//
// Each call to Allow records the request timestamp, prunes timestamps
// older than the window, and permits the request while the recorded
// count stays at or below the limit. The current request is counted
// before the check, so with a limit of N the Nth request in a window
// succeeds and the N+1th is denied. Denied requests still consume a
// slot, matching the screening behavior where abusive clients extend
// their own lockout.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	stop     chan struct{}
	once     sync.Once

	now func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window
// per identity. A background loop drops identities with no recent
// requests until Close is called.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		stop:     make(chan struct{}),
		now:      time.Now,
	}

	go rl.cleanupLoop()

	return rl
}

// Allow records a request for identity and reports whether it is
// within the limit.
func (rl *RateLimiter) Allow(identity string) bool {
	now := rl.now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.requests[identity][:0]
	for _, ts := range rl.requests[identity] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	recent = append(recent, now)
	rl.requests[identity] = recent

	return len(recent) <= rl.limit
}

// Remaining returns how many requests identity can still make in the
// current window. Does not record a request.
func (rl *RateLimiter) Remaining(identity string) int {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	count := 0
	for _, ts := range rl.requests[identity] {
		if ts.After(cutoff) {
			count++
		}
	}
	if count >= rl.limit {
		return 0
	}
	return rl.limit - count
}

// Close stops the background cleanup loop.
func (rl *RateLimiter) Close() {
	rl.once.Do(func() {
		close(rl.stop)
	})
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup removes identities whose every recorded request has aged out
// of the window.
func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for identity, timestamps := range rl.requests {
		active := false
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				active = true
				break
			}
		}
		if !active {
			delete(rl.requests, identity)
		}
	}
}
