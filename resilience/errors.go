package resilience

import "errors"

var (
	// ErrTimeout indicates an operation exceeded its deadline.
	ErrTimeout = errors.New("resilience: operation timed out")

	// ErrBulkheadFull indicates no concurrency slot was available.
	ErrBulkheadFull = errors.New("resilience: bulkhead full")

	// ErrRateLimited indicates the request was rejected by the rate limiter.
	ErrRateLimited = errors.New("resilience: rate limit exceeded")
)
