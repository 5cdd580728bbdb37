package cache

// DefaultMaxEntries is the eviction threshold used when Policy.MaxEntries
// is zero.
const DefaultMaxEntries = 10000

// Policy configures memoization bounds.
//
// Eviction is deliberately crude: once MaxEntries results have been
// written, the next request clears the whole store and resets the count.
// Re-computation per key is a bounded BFS, so simplicity wins over
// hit-rate optimality.
type Policy struct {
	// MaxEntries is the number of written entries that triggers a whole
	// store clear. Zero means DefaultMaxEntries.
	MaxEntries int
}

// DefaultPolicy returns the default memoization policy.
func DefaultPolicy() Policy {
	return Policy{MaxEntries: DefaultMaxEntries}
}

// EffectiveMax returns the eviction threshold, applying the default.
func (p Policy) EffectiveMax() int {
	if p.MaxEntries <= 0 {
		return DefaultMaxEntries
	}
	return p.MaxEntries
}
