// Package observe provides observability primitives for the solver
// service: structured logging, OpenTelemetry tracing and metrics, and a
// middleware that instruments solve requests.
//
// It is a pure instrumentation library: no execution, no transport, no
// I/O beyond exporter setup. The composition root wires the observer
// into the API server and the cache.
package observe
