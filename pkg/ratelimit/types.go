package ratelimit

import (
	"context"
	"math"
	"time"
)

// DefaultRetryAfter is reported when the store cannot tell when the window resets.
const DefaultRetryAfter = 900 * time.Second

// Result describes one client's window after a check.
// A zero ResetAt means the store could not report the window's expiry.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is zero for allowed requests.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	if r.ResetAt.IsZero() {
		return DefaultRetryAfter
	}
	return time.Until(r.ResetAt)
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds, never below 1
// for a rejected request.
func (r *Result) RetryAfterSeconds() int {
	if r.Allowed {
		return 0
	}
	secs := int(math.Ceil(r.RetryAfter().Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Limiter is the contract the HTTP middleware and the contact service
// depend on. FixedWindow is the only implementation.
type Limiter interface {
	// Allow consumes one slot when the key has one left.
	Allow(ctx context.Context, key string) (*Result, error)
	Status(ctx context.Context, key string) (*Result, error)
	Reset(ctx context.Context, key string) error
}

// Store holds per-key counters.
type Store interface {
	// IncrementAndGet adds incr to the key's counter and returns the new value
	// and the time left in its window. A missing or expired counter starts a
	// new window of the given length. Implementations must do this atomically.
	IncrementAndGet(ctx context.Context, key string, incr int, window time.Duration) (current int64, ttl time.Duration, err error)
	// Get reports zeros for a missing key.
	Get(ctx context.Context, key string) (current int64, ttl time.Duration, err error)
	Delete(ctx context.Context, key string) error
}
