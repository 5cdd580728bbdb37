// Package api exposes the solver over HTTP.
//
// POST /api/solve takes two jug capacities and a target amount and
// answers with the measuring steps, 400 when the target is
// unreachable, or 422 when the input fails validation. The server also
// mounts health probes and the Prometheus metrics endpoint, and guards
// the solve route with a rate limiter, a bulkhead and a timeout.
package api
