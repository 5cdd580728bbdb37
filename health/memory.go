package health

import (
	"context"
	"fmt"
	"runtime"
)

// MemoryCheckerConfig configures the memory health checker.
type MemoryCheckerConfig struct {
	// WarningThreshold is the allocation ratio that triggers degraded
	// status. Must be in (0, 1). Default: 0.8.
	WarningThreshold float64

	// CriticalThreshold is the allocation ratio that triggers
	// unhealthy status. Must be in (0, 1). Default: 0.95.
	CriticalThreshold float64

	// MaxAlloc is the allocation ceiling in bytes. Zero means use the
	// bytes currently obtained from the OS.
	MaxAlloc uint64
}

// MemoryChecker reports heap pressure from runtime memory stats.
type MemoryChecker struct {
	config MemoryCheckerConfig
}

// NewMemoryChecker creates a memory checker, normalizing thresholds.
func NewMemoryChecker(config MemoryCheckerConfig) *MemoryChecker {
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold
	}
	return &MemoryChecker{config: config}
}

func (m *MemoryChecker) Name() string { return "memory" }

func (m *MemoryChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	maxAlloc := m.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}
	if maxAlloc == 0 {
		return Healthy("memory stats unavailable")
	}

	ratio := float64(stats.Alloc) / float64(maxAlloc)
	details := map[string]any{
		"alloc_bytes":   stats.Alloc,
		"max_alloc":     maxAlloc,
		"usage_percent": ratio * 100,
		"heap_objects":  stats.HeapObjects,
		"num_gc":        stats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	switch {
	case ratio >= m.config.CriticalThreshold:
		return Unhealthy(
			fmt.Sprintf("memory usage critical: %.1f%%", ratio*100),
			ErrCheckFailed,
		).WithDetails(details)
	case ratio >= m.config.WarningThreshold:
		return Degraded(
			fmt.Sprintf("memory usage high: %.1f%%", ratio*100),
		).WithDetails(details)
	default:
		return Healthy(
			fmt.Sprintf("memory usage normal: %.1f%%", ratio*100),
		).WithDetails(details)
	}
}

var _ Checker = (*MemoryChecker)(nil)
