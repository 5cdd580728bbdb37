package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/waterjug/solver"
)

// SolveFunc is the instrumentable solve operation.
type SolveFunc func(ctx context.Context, capacityX, capacityY, target int) solver.Solution

// Middleware instruments a solve operation with tracing, metrics and
// logging. Any component may be nil; nil components are skipped.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware from individual components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// MiddlewareFromObserver builds a Middleware from an Observer's
// telemetry primitives.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return &Middleware{
		tracer:  NewTracer(obs.Tracer()),
		metrics: metrics,
		logger:  obs.Logger().WithComponent("solver"),
	}, nil
}

// Wrap returns a SolveFunc that records a span, measurements and a log
// entry around every call to next.
func (m *Middleware) Wrap(next SolveFunc) SolveFunc {
	return func(ctx context.Context, capacityX, capacityY, target int) solver.Solution {
		meta := SolveMeta{CapacityX: capacityX, CapacityY: capacityY, Target: target}

		start := time.Now()

		var endSpan func(bool)
		if m.tracer != nil {
			spanCtx, span := m.tracer.StartSpan(ctx, meta)
			ctx = spanCtx
			endSpan = func(solved bool) { m.tracer.EndSpan(span, solved) }
		}

		sol := next(ctx, capacityX, capacityY, target)
		elapsed := time.Since(start)
		solved := sol.Solved()

		if endSpan != nil {
			endSpan(solved)
		}
		if m.metrics != nil {
			m.metrics.RecordSolve(ctx, meta, elapsed, solved)
		}
		if m.logger != nil {
			m.logger.Info(ctx, "solve completed",
				Field{Key: "capacity_x", Value: capacityX},
				Field{Key: "capacity_y", Value: capacityY},
				Field{Key: "target", Value: target},
				Field{Key: "solved", Value: solved},
				Field{Key: "steps", Value: len(sol)},
				Field{Key: "duration_ms", Value: float64(elapsed.Nanoseconds()) / 1e6},
			)
		}

		return sol
	}
}
