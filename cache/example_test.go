package cache_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/waterjug/cache"
	"github.com/jonwraymond/waterjug/solver"
)

func ExampleNewCachedSolver() {
	store := cache.NewMemoryStore(cache.DefaultPolicy())

	computations := 0
	solve := func(capacityX, capacityY, target int) solver.Solution {
		computations++
		return solver.Solve(capacityX, capacityY, target)
	}

	cached, _ := cache.NewCachedSolver(store, solve)
	ctx := context.Background()

	// First request computes.
	first := cached.Solve(ctx, 2, 10, 4)
	fmt.Println("steps:", len(first), "computations:", computations)

	// Second request for the same key is served from the store.
	second := cached.Solve(ctx, 2, 10, 4)
	fmt.Println("steps:", len(second), "computations:", computations)
	// Output:
	// steps: 4 computations: 1
	// steps: 4 computations: 1
}

func ExampleMemoryStore_Prune() {
	store := cache.NewMemoryStore(cache.Policy{MaxEntries: 2})
	ctx := context.Background()

	_ = store.Set(ctx, cache.Key{CapacityX: 2, CapacityY: 10, Target: 4}, solver.Solve(2, 10, 4))
	_ = store.Set(ctx, cache.Key{CapacityX: 4, CapacityY: 3, Target: 2}, solver.Solve(4, 3, 2))

	fmt.Println("entries:", store.Len())
	fmt.Println("dropped:", store.Prune())
	fmt.Println("entries:", store.Len())
	// Output:
	// entries: 2
	// dropped: 2
	// entries: 0
}

func ExampleKey_String() {
	key := cache.Key{CapacityX: 2, CapacityY: 10, Target: 4}
	fmt.Println(key)
	// Output:
	// 2:10:4
}
