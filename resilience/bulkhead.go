package resilience

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// BulkheadConfig configures the bulkhead.
type BulkheadConfig struct {
	// MaxConcurrent caps in-flight operations. Default: 10.
	MaxConcurrent int

	// MaxWait bounds how long Acquire waits for a slot. Zero means
	// fail immediately when full.
	MaxWait time.Duration
}

// Bulkhead limits the number of operations running at once.
type Bulkhead struct {
	config   BulkheadConfig
	sem      *semaphore.Weighted
	rejected atomic.Int64
}

// NewBulkhead creates a bulkhead, applying defaults.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}
	return &Bulkhead{
		config: config,
		sem:    semaphore.NewWeighted(int64(config.MaxConcurrent)),
	}
}

// Acquire claims a slot. It returns ErrBulkheadFull when no slot frees
// up within MaxWait, or the context error if ctx ends first.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	if b.sem.TryAcquire(1) {
		return nil
	}

	if b.config.MaxWait <= 0 {
		b.rejected.Add(1)
		return ErrBulkheadFull
	}

	waitCtx, cancel := context.WithTimeout(ctx, b.config.MaxWait)
	defer cancel()

	if err := b.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.rejected.Add(1)
		return ErrBulkheadFull
	}
	return nil
}

// Release returns a slot claimed by Acquire.
func (b *Bulkhead) Release() {
	b.sem.Release(1)
}

// Execute runs op inside a bulkhead slot.
func (b *Bulkhead) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.Acquire(ctx); err != nil {
		return err
	}
	defer b.Release()
	return op(ctx)
}

// Rejected reports how many acquisitions were refused.
func (b *Bulkhead) Rejected() int64 {
	return b.rejected.Load()
}
