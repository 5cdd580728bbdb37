// Package resilience guards the solve endpoint against overload.
//
// Three independent guards compose in front of a handler: a token
// bucket rate limiter, a bulkhead capping concurrent solves, and a
// timeout bounding each solve. Each guard reports a distinct sentinel
// error so the API layer can map them to status codes.
package resilience
