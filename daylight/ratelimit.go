package daylight

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Clock abstracts wall time so rate limiting can be tested without sleeping.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RateLimiter enforces a minimum interval between remote requests for the
// whole run. It is meant for sequential use and is not safe for concurrent
// callers.
type RateLimiter struct {
	clock   Clock
	limiter *rate.Limiter
}

// NewRateLimiter allows perSecond requests per second. perSecond <= 0
// disables limiting. A nil clock means SystemClock.
func NewRateLimiter(perSecond float64, clock Clock) *RateLimiter {
	if clock == nil {
		clock = SystemClock()
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{
		clock:   clock,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the next request is allowed.
func (r *RateLimiter) Wait(ctx context.Context) error {
	now := r.clock.Now()
	res := r.limiter.ReserveN(now, 1)
	delay := res.DelayFrom(now)
	if delay <= 0 {
		return nil
	}
	if err := r.clock.Sleep(ctx, delay); err != nil {
		res.CancelAt(r.clock.Now())
		return err
	}
	return nil
}
