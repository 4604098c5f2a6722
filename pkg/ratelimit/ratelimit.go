package ratelimit

import (
	"context"
	"time"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed indicates whether the request is allowed.
	Allowed bool

	// Limit is the maximum number of requests allowed per window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window for this identity ends.
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

// Limiter is the interface consumed by HTTP handlers. Implementations must
// make the check-and-increment atomic with respect to concurrent callers
// for the same key.
type Limiter interface {
	// Allow checks whether a request for the given key is within quota,
	// consuming one slot when it is.
	Allow(ctx context.Context, key string) (*Result, error)

	// Reset clears the window for the given key.
	Reset(ctx context.Context, key string) error
}
