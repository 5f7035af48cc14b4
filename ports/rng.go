package ports

import (
	"math/rand"
)

// RNG provides seeded random number generation for deterministic operations.
// The backtester derives one stream per evaluated index so results are
// identical regardless of how many workers run the evaluation.
type RNG interface {
	// Stream creates a deterministic generator for a named operation
	Stream(name string, seed int64) *rand.Rand
}
