package cache

import (
	"context"
	"reflect"
	"testing"

	"github.com/jonwraymond/waterjug/solver"
)

func TestMemoryStore_GetSet(t *testing.T) {
	s := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()
	key := Key{2, 10, 4}

	if _, ok := s.Get(ctx, key); ok {
		t.Fatal("unexpected hit on empty store")
	}

	want := solver.Solve(2, 10, 4)
	if err := s.Set(ctx, key, want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := s.Get(ctx, key)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("stored solution differs from retrieved solution")
	}
}

// TestMemoryStore_EmptySolutionHit verifies a cached "no solution" result
// is a hit, distinct from a miss.
func TestMemoryStore_EmptySolutionHit(t *testing.T) {
	s := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()
	key := Key{2, 6, 5}

	if err := s.Set(ctx, key, nil); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sol, ok := s.Get(ctx, key)
	if !ok {
		t.Fatal("cached empty solution should be a hit")
	}
	if sol.Solved() {
		t.Error("cached empty solution should stay empty")
	}
}

// TestMemoryStore_Prune verifies the clear-on-threshold policy.
func TestMemoryStore_Prune(t *testing.T) {
	s := NewMemoryStore(Policy{MaxEntries: 3})
	ctx := context.Background()

	keys := []Key{{1, 2, 1}, {1, 3, 2}, {1, 4, 3}}
	for _, k := range keys {
		if err := s.Set(ctx, k, nil); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	if got := s.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if dropped := s.Prune(); dropped != 3 {
		t.Fatalf("Prune() = %d, want 3", dropped)
	}
	if got := s.Len(); got != 0 {
		t.Errorf("Len() after prune = %d, want 0", got)
	}

	// Counter reset: the next prune is a no-op until the threshold is
	// reached again.
	if dropped := s.Prune(); dropped != 0 {
		t.Errorf("Prune() after clear = %d, want 0", dropped)
	}
}

// TestMemoryStore_PruneBelowThreshold verifies nothing is dropped early.
func TestMemoryStore_PruneBelowThreshold(t *testing.T) {
	s := NewMemoryStore(Policy{MaxEntries: 10})
	ctx := context.Background()

	for i := 1; i <= 9; i++ {
		_ = s.Set(ctx, Key{i, i + 1, 1}, nil)
	}

	if dropped := s.Prune(); dropped != 0 {
		t.Errorf("Prune() below threshold = %d, want 0", dropped)
	}
	if got := s.Len(); got != 9 {
		t.Errorf("Len() = %d, want 9", got)
	}
}

// TestMemoryStore_OverwriteDoesNotAdvanceCounter verifies idempotent sets
// do not move the store toward eviction.
func TestMemoryStore_OverwriteDoesNotAdvanceCounter(t *testing.T) {
	s := NewMemoryStore(Policy{MaxEntries: 2})
	ctx := context.Background()
	key := Key{2, 10, 4}

	for i := 0; i < 5; i++ {
		_ = s.Set(ctx, key, nil)
	}

	if dropped := s.Prune(); dropped != 0 {
		t.Errorf("Prune() after repeated same-key sets = %d, want 0", dropped)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				key := Key{g + 1, i + 1, 1}
				_ = s.Set(ctx, key, nil)
				_, _ = s.Get(ctx, key)
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}

	if got := s.Len(); got != 8*200 {
		t.Errorf("Len() = %d, want %d", got, 8*200)
	}
}
