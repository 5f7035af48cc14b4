// Package strategy implements the weighted candidate generation core: a
// scorer deriving a per-number weight distribution from the stat table, and
// a generator sampling number sets under structural inclusion rules.
package strategy

import (
	"math/rand"

	"golotto/domain/analysis"
	"golotto/internal/config"

	"github.com/montanaflynn/stats"
)

// FloorWeight keeps every number eligible for sampling. Genuinely
// frequency-zero numbers in short histories must never be permanently
// excluded.
const FloorWeight = 1e-6

// WeightVector maps every pool number to a non-negative sampling weight.
// Immutable once derived; the generator works on its own adjusted copy.
type WeightVector struct {
	Pool    int       `json:"pool"`
	Weights []float64 `json:"weights"` // Weights[i] belongs to number i+1
}

// Get returns the weight for a number; zero for numbers off-pool
func (w WeightVector) Get(number int) float64 {
	if number < 1 || number > w.Pool {
		return 0
	}
	return w.Weights[number-1]
}

// Total returns the summed weight mass
func (w WeightVector) Total() float64 {
	total := 0.0
	for _, v := range w.Weights {
		total += v
	}
	return total
}

// Score combines three signals linearly per number: min-max normalized total
// frequency, min-max normalized recent frequency, and a uniform random
// component from the injected generator. The three configured weights must
// sum to 1.0 within WeightEpsilon; the scorer does not renormalize.
func Score(t *analysis.Table, strat config.StrategyConfig, rng *rand.Rand) (WeightVector, error) {
	if err := strat.ValidateWeights(); err != nil {
		return WeightVector{}, err
	}

	totals := make([]float64, t.Pool)
	recents := make([]float64, t.Pool)
	for i, s := range t.Stats {
		totals[i] = float64(s.TotalCount)
		recents[i] = float64(s.RecentCount)
	}

	normTotals := minMaxScale(totals)
	normRecents := minMaxScale(recents)

	wv := WeightVector{
		Pool:    t.Pool,
		Weights: make([]float64, t.Pool),
	}
	for i := 0; i < t.Pool; i++ {
		w := strat.FrequencyWeight*normTotals[i] +
			strat.RecentWeight*normRecents[i] +
			strat.RandomWeight*rng.Float64()
		if w < FloorWeight {
			w = FloorWeight
		}
		wv.Weights[i] = w
	}
	return wv, nil
}

// minMaxScale maps values into [0,1]. A zero-variance signal contributes 0
// for every number rather than dividing by zero.
func minMaxScale(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, err := stats.Min(values)
	if err != nil {
		return out
	}
	hi, err := stats.Max(values)
	if err != nil || hi == lo {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
