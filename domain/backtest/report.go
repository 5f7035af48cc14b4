// Package backtest replays the generation strategy at historical cutoff
// points and measures how the generated sets would have scored against the
// draws that actually followed.
package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/combin"
)

// Report aggregates match statistics over all tested cutoffs. Built
// incrementally during validation, immutable once finalized. It is a plain
// record; persistence belongs to the reporting collaborators.
type Report struct {
	RunID          string      `json:"run_id"`
	Mode           string      `json:"mode"`
	GeneratedAt    time.Time   `json:"generated_at"`
	SetsPerIndex   int         `json:"sets_per_index"`
	AlertThreshold int         `json:"alert_threshold"`
	Evaluated      int         `json:"evaluated"`
	Skipped        int         `json:"skipped"`
	Histogram      map[int]int `json:"histogram"` // best match count -> cutoffs
	BestPerIndex   []int       `json:"best_per_index"`
	AlertCount     int         `json:"alert_count"`
	MaxMatches     int         `json:"max_matches"`
	AlertRate      float64     `json:"alert_rate"`
	MeanBest       float64     `json:"mean_best"`
	MedianBest     float64     `json:"median_best"`
	ChanceBaseline []float64   `json:"chance_baseline"` // P(m matches) for one uniform random set
}

func newReport(mode string, setsPerIndex, alertThreshold int) *Report {
	return &Report{
		RunID:          uuid.NewString(),
		Mode:           mode,
		GeneratedAt:    time.Now().UTC(),
		SetsPerIndex:   setsPerIndex,
		AlertThreshold: alertThreshold,
		Histogram:      make(map[int]int),
	}
}

// fold merges one evaluated cutoff into the running aggregate
func (r *Report) fold(best int) {
	r.Evaluated++
	r.Histogram[best]++
	r.BestPerIndex = append(r.BestPerIndex, best)
	if best > r.MaxMatches {
		r.MaxMatches = best
	}
	if best >= r.AlertThreshold {
		r.AlertCount++
	}
}

// finalize computes the summary rates once all cutoffs are folded in
func (r *Report) finalize(pool, pick int) {
	r.ChanceBaseline = chanceBaseline(pool, pick)
	if r.Evaluated == 0 {
		return
	}
	r.AlertRate = float64(r.AlertCount) / float64(r.Evaluated)

	best := make([]float64, len(r.BestPerIndex))
	for i, b := range r.BestPerIndex {
		best[i] = float64(b)
	}
	if mean, err := stats.Mean(best); err == nil {
		r.MeanBest = mean
	}
	if median, err := stats.Median(best); err == nil {
		r.MedianBest = median
	}
}

// chanceBaseline returns the hypergeometric distribution of match counts for
// a single uniformly random set: P(m) = C(k,m) C(pool-k, k-m) / C(pool,k).
// Lottery draws are independent random events; this is the yardstick a
// declared heuristic has to be measured against, not a prediction.
func chanceBaseline(pool, pick int) []float64 {
	if pool <= 0 || pick <= 0 || pick > pool {
		return nil
	}
	total := combin.GeneralizedBinomial(float64(pool), float64(pick))
	out := make([]float64, pick+1)
	for m := 0; m <= pick; m++ {
		if pick-m > pool-pick {
			continue
		}
		out[m] = combin.GeneralizedBinomial(float64(pick), float64(m)) *
			combin.GeneralizedBinomial(float64(pool-pick), float64(pick-m)) / total
	}
	return out
}
