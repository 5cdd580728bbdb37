package resilience

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiterConfig configures the token bucket.
type RateLimiterConfig struct {
	// Rate is the sustained number of operations per second.
	// Default: 100.
	Rate float64

	// Burst is the bucket capacity. Default: 10.
	Burst int
}

// RateLimiter is a token bucket limiter for the solve endpoint.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter, applying defaults.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 100
	}
	if config.Burst <= 0 {
		config.Burst = 10
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(config.Rate), config.Burst),
	}
}

// Allow reports whether one more operation may proceed now.
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

// Wait blocks until a token is available or ctx ends.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := rl.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrRateLimited
	}
	return nil
}

// Execute runs op if a token is available, otherwise returns
// ErrRateLimited without running it.
func (rl *RateLimiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if !rl.Allow() {
		return ErrRateLimited
	}
	return op(ctx)
}

// Tokens reports the tokens currently available.
func (rl *RateLimiter) Tokens() float64 {
	return rl.limiter.Tokens()
}
