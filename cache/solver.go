package cache

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/waterjug/solver"
)

// SolveFunc computes a solution for the given capacities and target.
type SolveFunc func(capacityX, capacityY, target int) solver.Solution

// Events receives cache lifecycle notifications. Implementations must be
// safe for concurrent use and must not block.
type Events interface {
	// Hit is called when a lookup is served from the store.
	Hit()

	// Miss is called when a lookup requires computation.
	Miss()

	// Evicted is called after a whole-store clear with the number of
	// entries dropped.
	Evicted(entries int)
}

// NopEvents is an Events implementation that does nothing.
type NopEvents struct{}

func (NopEvents) Hit()        {}
func (NopEvents) Miss()       {}
func (NopEvents) Evicted(int) {}

// Option configures a CachedSolver.
type Option func(*CachedSolver)

// WithEvents attaches a cache event hook.
func WithEvents(ev Events) Option {
	return func(s *CachedSolver) {
		if ev != nil {
			s.events = ev
		}
	}
}

// CachedSolver memoizes a SolveFunc behind a Store.
//
// Solve has the same semantics as the wrapped solver: identical inputs
// yield identical solutions whether served from the store or computed.
// Negative results (empty solutions) are stored too, so a prior
// "unreachable" determination is itself a hit.
type CachedSolver struct {
	store  Store
	solve  SolveFunc
	events Events
	group  singleflight.Group
}

// NewCachedSolver wraps solve with memoization backed by store.
func NewCachedSolver(store Store, solve SolveFunc, opts ...Option) (*CachedSolver, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if solve == nil {
		return nil, ErrNilSolver
	}

	s := &CachedSolver{store: store, solve: solve, events: NopEvents{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Solve returns the memoized solution for (capacityX, capacityY, target),
// computing and storing it on a miss. Concurrent misses for the same key
// share a single computation.
func (s *CachedSolver) Solve(ctx context.Context, capacityX, capacityY, target int) solver.Solution {
	key := Key{CapacityX: capacityX, CapacityY: capacityY, Target: target}

	// Whole-store eviction runs before the lookup, so a request arriving
	// at the threshold repopulates a fresh store.
	if dropped := s.store.Prune(); dropped > 0 {
		s.events.Evicted(dropped)
	}

	if sol, ok := s.store.Get(ctx, key); ok {
		s.events.Hit()
		return sol
	}
	s.events.Miss()

	v, _, _ := s.group.Do(key.String(), func() (any, error) {
		sol := s.solve(capacityX, capacityY, target)
		_ = s.store.Set(ctx, key, sol)
		return sol, nil
	})
	return v.(solver.Solution)
}
