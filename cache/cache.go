package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/jonwraymond/waterjug/solver"
)

// Sentinel errors for cache operations.
var (
	ErrNilStore   = errors.New("cache: store is nil")
	ErrNilSolver  = errors.New("cache: solve function is nil")
	ErrInvalidKey = errors.New("cache: key fields must be positive")
)

// Key identifies a unique solver request. Two keys are equal iff all
// three fields are equal; Key is comparable and is used directly as a
// map key.
type Key struct {
	CapacityX int
	CapacityY int
	Target    int
}

// String returns the canonical textual form "capacityX:capacityY:target".
func (k Key) String() string {
	return strconv.Itoa(k.CapacityX) + ":" + strconv.Itoa(k.CapacityY) + ":" + strconv.Itoa(k.Target)
}

// Validate checks that all key fields are positive.
func (k Key) Validate() error {
	if k.CapacityX <= 0 || k.CapacityY <= 0 || k.Target <= 0 {
		return ErrInvalidKey
	}
	return nil
}

// Store is the interface for memoizing solver results.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Get never errors; it returns (nil, false) on miss. A stored empty
//   solution is a hit.
// - Set is idempotent per key: the solver is deterministic, so concurrent
//   writers racing on the same key store equal values and last-write wins.
// - Stored solutions are immutable; callers must not modify what Get returns.
type Store interface {
	// Get retrieves a memoized solution.
	Get(ctx context.Context, key Key) (solver.Solution, bool)

	// Set stores a solution (possibly empty) under key.
	Set(ctx context.Context, key Key, sol solver.Solution) error

	// Prune clears the whole store once the number of entries written
	// has reached the policy maximum. It returns the number of entries
	// dropped, zero when below the threshold.
	Prune() int

	// Len returns the current number of entries.
	Len() int
}
