package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SpanName is the span name used for solve requests.
const SpanName = "jug.solve"

// SolveMeta carries the parameters of one solve request for telemetry.
type SolveMeta struct {
	CapacityX int
	CapacityY int
	Target    int
}

// Tracer opens and closes spans around solve requests.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
type Tracer interface {
	// StartSpan opens a span for a solve request and returns the
	// derived context plus the span.
	StartSpan(ctx context.Context, meta SolveMeta) (context.Context, trace.Span)

	// EndSpan closes the span, recording the outcome.
	EndSpan(span trace.Span, solved bool)
}

// otelTracer emits spans through an OpenTelemetry tracer.
type otelTracer struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer backed by the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &otelTracer{tracer: t}
}

func (t *otelTracer) StartSpan(ctx context.Context, meta SolveMeta) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanName,
		trace.WithAttributes(
			attribute.Int("jug.capacity_x", meta.CapacityX),
			attribute.Int("jug.capacity_y", meta.CapacityY),
			attribute.Int("jug.target", meta.Target),
		),
	)
}

func (t *otelTracer) EndSpan(span trace.Span, solved bool) {
	span.SetAttributes(attribute.Bool("jug.solved", solved))
	span.End()
}

var _ Tracer = (*otelTracer)(nil)
