package strategy

import (
	"math/rand"
	"sort"

	"golotto/domain/analysis"
	"golotto/internal/config"
)

// ColdPenaltyFactor scales down the sampling weight of a cold number that
// has not resurged within the recent window.
const ColdPenaltyFactor = 0.25

// Structural rule names recorded on generated sets
const (
	RuleLowNumber = "low_number"
	RuleHighPrime = "high_prime"
)

// CandidateSet is a generated draw-shaped set of numbers, annotated with the
// structural repair rules that fired. Never mutated after creation.
type CandidateSet struct {
	Numbers []int    `json:"numbers"`
	Rules   []string `json:"rules,omitempty"`
}

// Generate samples one candidate set from the weight vector. Sampling is a
// sequential weighted draw without replacement over the cold-adjusted
// weights, followed by the structural repair rules in fixed order:
// low-number first, then high-prime. A rule with no eligible replacement is
// skipped and the original sample kept; that is a designed fallback, never
// an error.
func Generate(wv WeightVector, t *analysis.Table, strat config.StrategyConfig, rng *rand.Rand) CandidateSet {
	adjusted := coldAdjust(wv, t, strat)
	numbers := sampleWithoutReplacement(adjusted, strat.NumbersToSelect, rng)

	var rules []string
	protected := -1 // slot justified by the low-number rule

	if rng.Float64() < strat.LowNumberChance {
		if idx := lowestSatisfying(numbers, func(n int) bool { return n <= strat.LowNumberMax }, adjusted); idx >= 0 {
			protected = idx
		} else if repaired, slot := repairSwap(numbers, adjusted, rng, protected, lowCandidates(t, strat, numbers)); slot >= 0 {
			numbers = repaired
			protected = slot
			rules = append(rules, RuleLowNumber)
		}
	}

	if rng.Float64() < strat.HighPrimeChance {
		hasHighPrime := false
		for _, n := range numbers {
			if t.Get(n).HighPrime {
				hasHighPrime = true
				break
			}
		}
		if !hasHighPrime {
			if repaired, slot := repairSwap(numbers, adjusted, rng, protected, highPrimeCandidates(t, numbers)); slot >= 0 {
				numbers = repaired
				rules = append(rules, RuleHighPrime)
			}
		}
	}

	sort.Ints(numbers)
	return CandidateSet{Numbers: numbers, Rules: rules}
}

// GenerateMany produces k independently sampled candidate sets. Sets are not
// required to be globally distinct from one another.
func GenerateMany(wv WeightVector, t *analysis.Table, strat config.StrategyConfig, rng *rand.Rand, k int) []CandidateSet {
	sets := make([]CandidateSet, 0, k)
	for i := 0; i < k; i++ {
		sets = append(sets, Generate(wv, t, strat, rng))
	}
	return sets
}

// coldAdjust returns a copy of the weights with cold numbers penalized
// unless they resurged within the recent window. Pre-sampling adjustment,
// not a post-hoc repair.
func coldAdjust(wv WeightVector, t *analysis.Table, strat config.StrategyConfig) []float64 {
	adjusted := make([]float64, len(wv.Weights))
	copy(adjusted, wv.Weights)
	for i := range adjusted {
		s := t.Stats[i]
		if s.Cold && s.RecentCount < strat.ResurgenceThreshold {
			adjusted[i] *= ColdPenaltyFactor
		}
	}
	return adjusted
}

// sampleWithoutReplacement performs a sequential weighted draw: each pick
// removes the chosen number and the remaining weights are reused
// unnormalized for subsequent picks.
func sampleWithoutReplacement(weights []float64, k int, rng *rand.Rand) []int {
	taken := make([]bool, len(weights))
	out := make([]int, 0, k)

	for len(out) < k {
		total := 0.0
		for i, w := range weights {
			if !taken[i] {
				total += w
			}
		}

		pick := -1
		if total > 0 {
			r := rng.Float64() * total
			for i, w := range weights {
				if taken[i] {
					continue
				}
				r -= w
				if r <= 0 {
					pick = i
					break
				}
			}
		}
		if pick < 0 {
			// residual float mass or an all-zero tail: take the first free slot
			for i := range weights {
				if !taken[i] {
					pick = i
					break
				}
			}
		}

		taken[pick] = true
		out = append(out, pick+1)
	}
	return out
}

// repairSwap replaces the lowest-weighted non-protected member of the set
// with a weighted-random pick from candidates. Returns the repaired set and
// the index of the swapped slot, or (nil, -1) when no candidate exists.
func repairSwap(numbers []int, weights []float64, rng *rand.Rand, protected int, candidates []int) ([]int, int) {
	if len(candidates) == 0 {
		return nil, -1
	}

	victim := -1
	for i, n := range numbers {
		if i == protected {
			continue
		}
		if victim < 0 || weights[n-1] < weights[numbers[victim]-1] {
			victim = i
		}
	}
	if victim < 0 {
		return nil, -1
	}

	replacement := weightedPick(candidates, weights, rng)
	repaired := make([]int, len(numbers))
	copy(repaired, numbers)
	repaired[victim] = replacement
	return repaired, victim
}

// weightedPick draws one candidate proportionally to its sampling weight
func weightedPick(candidates []int, weights []float64, rng *rand.Rand) int {
	total := 0.0
	for _, n := range candidates {
		total += weights[n-1]
	}
	if total <= 0 {
		return candidates[rng.Intn(len(candidates))]
	}
	r := rng.Float64() * total
	for _, n := range candidates {
		r -= weights[n-1]
		if r <= 0 {
			return n
		}
	}
	return candidates[len(candidates)-1]
}

// lowestSatisfying returns the index of the lowest-weighted set member for
// which pred holds, or -1 when none does
func lowestSatisfying(numbers []int, pred func(int) bool, weights []float64) int {
	best := -1
	for i, n := range numbers {
		if !pred(n) {
			continue
		}
		if best < 0 || weights[n-1] < weights[numbers[best]-1] {
			best = i
		}
	}
	return best
}

func lowCandidates(t *analysis.Table, strat config.StrategyConfig, exclude []int) []int {
	return poolCandidates(t, exclude, func(s analysis.NumberStats) bool { return s.Low })
}

func highPrimeCandidates(t *analysis.Table, exclude []int) []int {
	return poolCandidates(t, exclude, func(s analysis.NumberStats) bool { return s.HighPrime })
}

func poolCandidates(t *analysis.Table, exclude []int, pred func(analysis.NumberStats) bool) []int {
	excluded := make(map[int]bool, len(exclude))
	for _, n := range exclude {
		excluded[n] = true
	}
	var out []int
	for _, s := range t.Stats {
		if pred(s) && !excluded[s.Number] {
			out = append(out, s.Number)
		}
	}
	return out
}
