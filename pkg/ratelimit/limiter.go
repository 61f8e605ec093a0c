package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter gates outbound requests to a configured frequency.
type Limiter interface {
	// Acquire blocks until the limiter grants a slot or the context is
	// cancelled. Grants are serialized: no two grants are issued closer
	// together than the configured interval.
	Acquire(ctx context.Context) error
}

// Interval grants one request per 1/rps seconds. A burst of one keeps the
// grants evenly spaced even when many goroutines are waiting.
type Interval struct {
	limiter *rate.Limiter
}

// NewInterval creates an interval limiter allowing rps requests per second.
func NewInterval(rps float64) *Interval {
	return &Interval{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Acquire blocks until the next grant is due.
func (i *Interval) Acquire(ctx context.Context) error {
	return i.limiter.Wait(ctx)
}

// Nop grants immediately; used when no rate limit is configured.
type Nop struct{}

// Acquire returns immediately unless the context is already cancelled.
func (Nop) Acquire(ctx context.Context) error {
	return ctx.Err()
}

// FromRate returns a limiter for the configured requests-per-second value,
// or a Nop when the rate is unset.
func FromRate(rps float64) Limiter {
	if rps <= 0 {
		return Nop{}
	}
	return NewInterval(rps)
}
