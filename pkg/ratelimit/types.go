// Package ratelimit implements a per-key sliding window limiter with
// pluggable storage (in-memory or Redis).
package ratelimit

import (
	"context"
	"time"
)

// Result contains the result of a rate limit check.
type Result struct {
	// Allowed indicates whether the request is allowed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests remaining in the current window.
	Remaining int

	// ResetAt is when the oldest recorded request leaves the window.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Store records request timestamps per key.
type Store interface {
	// RecordIfAllowed drops timestamps older than now-window, then records now
	// if fewer than limit remain. It returns whether the request was recorded,
	// the resulting count, and the oldest timestamp still in the window.
	RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (allowed bool, count int, oldest time.Time, err error)

	// Delete removes the given key from the store.
	Delete(ctx context.Context, key string) error
}
