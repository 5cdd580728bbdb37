package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records solve request measurements.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: recording must be best-effort and must not panic.
type Metrics interface {
	// RecordSolve records one completed solve request.
	RecordSolve(ctx context.Context, meta SolveMeta, d time.Duration, solved bool)
}

// metricsImpl records solve measurements to an OpenTelemetry meter.
type metricsImpl struct {
	solves     metric.Int64Counter
	unsolvable metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewMetrics creates a Metrics backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	solves, err := meter.Int64Counter("jug.solve.total",
		metric.WithDescription("Total solve requests processed"))
	if err != nil {
		return nil, fmt.Errorf("observe: create solve counter: %w", err)
	}

	unsolvable, err := meter.Int64Counter("jug.solve.unsolvable",
		metric.WithDescription("Solve requests with no solution"))
	if err != nil {
		return nil, fmt.Errorf("observe: create unsolvable counter: %w", err)
	}

	duration, err := meter.Float64Histogram("jug.solve.duration_ms",
		metric.WithDescription("Solve request duration in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("observe: create duration histogram: %w", err)
	}

	return &metricsImpl{
		solves:     solves,
		unsolvable: unsolvable,
		duration:   duration,
	}, nil
}

func (m *metricsImpl) RecordSolve(ctx context.Context, meta SolveMeta, d time.Duration, solved bool) {
	attrs := metric.WithAttributes(
		attribute.Bool("jug.solved", solved),
	)
	m.solves.Add(ctx, 1, attrs)
	if !solved {
		m.unsolvable.Add(ctx, 1)
	}
	m.duration.Record(ctx, float64(d.Nanoseconds())/1e6, attrs)
}

// nopMetrics discards everything.
type nopMetrics struct{}

func (nopMetrics) RecordSolve(ctx context.Context, meta SolveMeta, d time.Duration, solved bool) {}

// NopMetrics returns a Metrics that discards everything.
func NopMetrics() Metrics { return nopMetrics{} }

var _ Metrics = (*metricsImpl)(nil)

// CacheMetrics counts memoization cache activity. Its methods match the
// cache package's event hook so an instance can be passed straight to
// the cached solver.
type CacheMetrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
	dropped   metric.Int64Counter
}

// NewCacheMetrics creates cache counters on the given meter.
func NewCacheMetrics(meter metric.Meter) (*CacheMetrics, error) {
	hits, err := meter.Int64Counter("jug.cache.hits",
		metric.WithDescription("Cache lookups that returned a stored solution"))
	if err != nil {
		return nil, fmt.Errorf("observe: create cache hit counter: %w", err)
	}

	misses, err := meter.Int64Counter("jug.cache.misses",
		metric.WithDescription("Cache lookups that required a fresh solve"))
	if err != nil {
		return nil, fmt.Errorf("observe: create cache miss counter: %w", err)
	}

	evictions, err := meter.Int64Counter("jug.cache.evictions",
		metric.WithDescription("Cache clear events triggered by the write threshold"))
	if err != nil {
		return nil, fmt.Errorf("observe: create cache eviction counter: %w", err)
	}

	dropped, err := meter.Int64Counter("jug.cache.dropped_entries",
		metric.WithDescription("Entries discarded across all cache clear events"))
	if err != nil {
		return nil, fmt.Errorf("observe: create cache dropped counter: %w", err)
	}

	return &CacheMetrics{
		hits:      hits,
		misses:    misses,
		evictions: evictions,
		dropped:   dropped,
	}, nil
}

// Hit records a cache hit.
func (c *CacheMetrics) Hit() {
	c.hits.Add(context.Background(), 1)
}

// Miss records a cache miss.
func (c *CacheMetrics) Miss() {
	c.misses.Add(context.Background(), 1)
}

// Evicted records one clear event that dropped n entries.
func (c *CacheMetrics) Evicted(n int) {
	c.evictions.Add(context.Background(), 1)
	c.dropped.Add(context.Background(), int64(n))
}
