package generator

import (
	"fmt"
	"math"
	"math/rand"
)

// weightTolerance bounds how far the weights may drift from summing to 1
const weightTolerance = 1e-9

// WeightedChoice draws one outcome from a fixed finite set using
// caller-supplied weights that sum to 1.
func WeightedChoice[T any](rng *rand.Rand, outcomes []T, weights []float64) (T, error) {
	var zero T
	if len(outcomes) == 0 {
		return zero, fmt.Errorf("weighted choice over an empty outcome set")
	}
	if len(outcomes) != len(weights) {
		return zero, fmt.Errorf("weighted choice: %d outcomes but %d weights", len(outcomes), len(weights))
	}

	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return zero, fmt.Errorf("weighted choice: invalid weight %v at %d", w, i)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightTolerance {
		return zero, fmt.Errorf("weighted choice: weights sum to %v, want 1", sum)
	}

	u := rng.Float64()
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if u < cumulative {
			return outcomes[i], nil
		}
	}

	// Rounding left u above the final cumulative sum; pick the last
	// outcome that carries any weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return outcomes[i], nil
		}
	}
	return outcomes[len(outcomes)-1], nil
}
