package resilience

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout bounds an operation when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Timeout wraps operations with a deadline.
type Timeout struct {
	limit time.Duration
}

// NewTimeout creates a timeout guard. Non-positive values fall back to
// DefaultTimeout.
func NewTimeout(limit time.Duration) *Timeout {
	if limit <= 0 {
		limit = DefaultTimeout
	}
	return &Timeout{limit: limit}
}

// Limit returns the configured deadline.
func (t *Timeout) Limit() time.Duration { return t.limit }

// Execute runs op under the deadline. The op goroutine keeps running
// after a timeout; op must honor ctx to stop early.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.limit)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ctx.Err()
	}
}

// ExecuteWithTimeout runs op under an ad hoc deadline.
func ExecuteWithTimeout(ctx context.Context, limit time.Duration, op func(context.Context) error) error {
	return NewTimeout(limit).Execute(ctx, op)
}
