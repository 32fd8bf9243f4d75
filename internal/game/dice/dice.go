// Package dice provides the randomness abstraction consumed by the armor engine.
//
// Every random draw the engine makes goes through a Source supplied by the
// caller, so a fixed or seeded Source makes a resolution fully reproducible.
package dice

// Source is the randomness provider for engine rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

// Range returns a value drawn uniformly from [lo, hi).
//
// Precondition: src must be non-nil.
// Postcondition: Returns lo when lo == hi; otherwise lo <= v < hi.
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
