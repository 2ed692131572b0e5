package email

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle caps how many messages the wrapped Dispatcher sends across all
// clients.
//
// The per-client limiter bounds a single sender, but many clients each
// staying under their own quota can still flood the relay. Throttle keeps a
// process-wide token bucket in front of the relay: once the bucket is empty
// Send fails fast with ErrThrottled and the caller reports a temporary
// failure, the same way it would for a relay outage.
//
// The bucket is local to the process. Instances behind a load balancer each
// get their own budget.
type Throttle struct {
	next    Dispatcher
	limiter *rate.Limiter
}

// NewThrottle allows perMinute sends per minute with the given burst.
// A non-positive perMinute disables throttling.
func NewThrottle(next Dispatcher, perMinute, burst int) *Throttle {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60)
	}
	return &Throttle{
		next:    next,
		limiter: rate.NewLimiter(limit, max(burst, 1)),
	}
}

// Verify delegates to the wrapped dispatcher.
func (t *Throttle) Verify(ctx context.Context) error {
	return t.next.Verify(ctx)
}

// Send rejects with ErrThrottled when the budget is spent. It never waits.
func (t *Throttle) Send(ctx context.Context, msg Message) error {
	if !t.limiter.Allow() {
		return ErrThrottled
	}
	return t.next.Send(ctx, msg)
}
