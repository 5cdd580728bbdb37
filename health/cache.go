package health

import (
	"context"
	"fmt"
)

// Sizer reports the number of entries held by a store. The cache
// package's MemoryStore satisfies it.
type Sizer interface {
	Len() int
}

// CacheChecker reports the fill level of the memoization cache
// relative to its clear threshold.
type CacheChecker struct {
	store      Sizer
	maxEntries int
}

// NewCacheChecker creates a checker for the given store. maxEntries is
// the store's clear threshold; non-positive values disable the ratio
// and the check only reports the entry count.
func NewCacheChecker(store Sizer, maxEntries int) *CacheChecker {
	return &CacheChecker{store: store, maxEntries: maxEntries}
}

func (c *CacheChecker) Name() string { return "cache" }

// Check reports healthy while the store is below 90% of its threshold
// and degraded above it. The store clears itself at the threshold, so
// a full cache is never unhealthy.
func (c *CacheChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	if c.store == nil {
		return Unhealthy("cache store not configured", ErrCheckFailed)
	}

	entries := c.store.Len()
	details := map[string]any{
		"entries":   entries,
		"threshold": c.maxEntries,
	}

	if c.maxEntries <= 0 {
		return Healthy(fmt.Sprintf("cache holds %d entries", entries)).WithDetails(details)
	}

	ratio := float64(entries) / float64(c.maxEntries)
	details["fill_percent"] = ratio * 100

	if ratio >= 0.9 {
		return Degraded(
			fmt.Sprintf("cache near clear threshold: %.1f%%", ratio*100),
		).WithDetails(details)
	}

	return Healthy(
		fmt.Sprintf("cache fill normal: %.1f%%", ratio*100),
	).WithDetails(details)
}

var _ Checker = (*CacheChecker)(nil)
