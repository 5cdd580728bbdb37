package cache

import (
	"context"
	"sync"

	"github.com/jonwraymond/waterjug/solver"
)

// MemoryStore is a mutex-guarded in-memory Store with clear-on-threshold
// eviction. It lives for the process lifetime and has no teardown.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]solver.Solution
	written int
	max     int
}

// NewMemoryStore creates an in-memory store bounded by the given policy.
func NewMemoryStore(policy Policy) *MemoryStore {
	return &MemoryStore{
		entries: make(map[Key]solver.Solution),
		max:     policy.EffectiveMax(),
	}
}

// Get retrieves a memoized solution. A stored empty solution is a hit.
func (s *MemoryStore) Get(_ context.Context, key Key) (solver.Solution, bool) {
	s.mu.RLock()
	sol, ok := s.entries[key]
	s.mu.RUnlock()
	return sol, ok
}

// Set stores a solution under key. Overwriting an existing key does not
// advance the written count.
func (s *MemoryStore) Set(_ context.Context, key Key, sol solver.Solution) error {
	s.mu.Lock()
	if _, ok := s.entries[key]; !ok {
		s.written++
	}
	s.entries[key] = sol
	s.mu.Unlock()
	return nil
}

// Prune clears everything once the written count has reached the policy
// maximum, returning the number of entries dropped.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.written < s.max {
		return 0
	}
	dropped := len(s.entries)
	s.entries = make(map[Key]solver.Solution)
	s.written = 0
	return dropped
}

// MaxEntries returns the clear threshold the store was built with.
func (s *MemoryStore) MaxEntries() int {
	return s.max
}

// Len returns the number of memoized entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
