// Package cache memoizes water-jug solver results.
//
// It provides an explicit composite Key, a Store interface with a
// mutex-guarded in-memory implementation, a clear-on-threshold eviction
// policy, and a CachedSolver facade that collapses concurrent misses for
// the same key into a single computation.
package cache
