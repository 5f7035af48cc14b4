package backtest

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golotto/domain/analysis"
	"golotto/domain/draw"
	"golotto/domain/strategy"
	"golotto/internal/config"

	"golang.org/x/sync/errgroup"
)

// RNG derives independent named random streams. Satisfied by the seeded RNG
// adapter; declared here so the engine stays free of adapter concerns.
type RNG interface {
	Stream(name string, seed int64) *rand.Rand
}

// evalPoint is one cutoff: the history prefix available at that moment and
// the draw that actually followed it
type evalPoint struct {
	prefix []draw.Draw
	target draw.Draw
}

type evalResult struct {
	skipped bool
	best    int
}

// Validate replays the scoring strategy over a sliding historical window and
// aggregates match statistics. Cutoffs with fewer than analysis.MinHistory
// prior draws are skipped and recorded as skipped, never treated as errors.
//
// Each cutoff depends only on its own immutable history prefix, so the
// evaluations fan out across a worker pool and fold back into one report;
// per-cutoff RNG streams keep the aggregate identical regardless of worker
// count or evaluation order.
func Validate(ctx context.Context, history, upcoming []draw.Draw, cfg *config.Config, rng RNG) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := newReport(cfg.Validation.Mode, cfg.Output.SetsToGenerate, cfg.Validation.AlertThreshold)
	points := evalPoints(history, upcoming, cfg)
	if len(points) == 0 {
		report.finalize(cfg.Strategy.NumberPool, cfg.Strategy.NumbersToSelect)
		return report, nil
	}

	results := make([]evalResult, len(points))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	workers := runtime.NumCPU()
	if workers > len(points) {
		workers = len(points)
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for idx := range jobs {
				res, err := evaluate(points[idx], cfg, rng.Stream(fmt.Sprintf("backtest/%d", idx), int64(idx)))
				if err != nil {
					return err
				}
				results[idx] = res
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := range points {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// single-threaded fold keeps the aggregate order-independent
	for _, res := range results {
		if res.skipped {
			report.Skipped++
			continue
		}
		report.fold(res.best)
	}
	report.finalize(cfg.Strategy.NumberPool, cfg.Strategy.NumbersToSelect)
	return report, nil
}

// evalPoints materializes the cutoffs for the configured validation mode
func evalPoints(history, upcoming []draw.Draw, cfg *config.Config) []evalPoint {
	var points []evalPoint

	mode := cfg.Validation.Mode
	if mode == "historical" || mode == "both" {
		start := len(history) - cfg.Validation.TestDraws
		if start < 0 {
			start = 0
		}
		for i := start; i < len(history); i++ {
			points = append(points, evalPoint{prefix: history[:i], target: history[i]})
		}
	}
	if mode == "new_draw" || mode == "both" {
		for i := range upcoming {
			prefix := make([]draw.Draw, 0, len(history)+i)
			prefix = append(prefix, history...)
			prefix = append(prefix, upcoming[:i]...)
			points = append(points, evalPoint{prefix: prefix, target: upcoming[i]})
		}
	}
	return points
}

// evaluate runs one cutoff: rebuild the stat table from the prefix, derive
// weights, generate the configured number of sets and keep the best match
// against the target draw
func evaluate(p evalPoint, cfg *config.Config, rng *rand.Rand) (evalResult, error) {
	if len(p.prefix) < analysis.MinHistory {
		return evalResult{skipped: true}, nil
	}

	table, err := analysis.BuildTable(p.prefix, cfg.Strategy)
	if err != nil {
		return evalResult{}, err
	}
	weights, err := strategy.Score(table, cfg.Strategy, rng)
	if err != nil {
		return evalResult{}, err
	}

	best := 0
	for _, set := range strategy.GenerateMany(weights, table, cfg.Strategy, rng, cfg.Output.SetsToGenerate) {
		if m := p.target.Match(set.Numbers); m > best {
			best = m
		}
	}
	return evalResult{best: best}, nil
}
