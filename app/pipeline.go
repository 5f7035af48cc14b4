// Package app orchestrates one full run: load draws, build statistics,
// derive weights, generate candidate sets, optionally backtest, then hand
// the artifacts to the reporting and archive collaborators.
package app

import (
	"context"

	"golotto/domain/analysis"
	"golotto/domain/backtest"
	"golotto/domain/draw"
	"golotto/domain/strategy"
	"golotto/internal"
	"golotto/internal/config"
	"golotto/internal/errors"
	"golotto/ports"

	"github.com/google/uuid"
)

// Pipeline wires the core to its collaborators
type Pipeline struct {
	cfg     *config.Config
	log     *internal.Logger
	source  ports.DrawSource
	sink    ports.ReportSink
	archive ports.Archive // nil when no archive database is configured
	rng     ports.RNG
}

// New creates a pipeline. The archive may be nil.
func New(cfg *config.Config, log *internal.Logger, source ports.DrawSource, sink ports.ReportSink, archive ports.Archive, rng ports.RNG) *Pipeline {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Pipeline{cfg: cfg, log: log, source: source, sink: sink, archive: archive, rng: rng}
}

// SetMatch describes how one generated set scored against a real draw
type SetMatch struct {
	Numbers []int `json:"numbers"`
	Matches int   `json:"matches"`
	Matched []int `json:"matched_numbers,omitempty"`
}

// LatestCheck compares the generated sets against the latest confirmed draw
type LatestCheck struct {
	DrawDate    string     `json:"draw_date"`
	DrawNumbers []int      `json:"draw_numbers"`
	Sets        []SetMatch `json:"sets"`
}

// Result is everything one run produced
type Result struct {
	RunID    string                  `json:"run_id"`
	Sets     []strategy.CandidateSet `json:"sets"`
	Report   *backtest.Report        `json:"report,omitempty"`
	Snapshot ports.AnalysisSnapshot  `json:"snapshot"`
	Latest   *LatestCheck            `json:"latest,omitempty"`
}

// Run executes the full pipeline
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	history, err := p.source.LoadHistorical(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := p.source.LoadUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	// Generation sees the merged sequence; the backtester receives history
	// and upcoming separately so new_draw cutoffs are not double counted.
	merged := history
	if len(upcoming) > 0 && p.cfg.Data.MergeUpcoming {
		merged = make([]draw.Draw, 0, len(history)+len(upcoming))
		merged = append(merged, history...)
		merged = append(merged, upcoming...)
		p.log.Info("merged %d upcoming draws into history", len(upcoming))
	}

	table, err := analysis.BuildTable(merged, p.cfg.Strategy)
	if err != nil {
		return nil, err
	}
	snapshot := ports.AnalysisSnapshot{
		Table:        table,
		Temperature:  table.ClassifyTemperature(p.cfg.Analysis.RecencyBins),
		Combinations: analysis.CombinationCounts(merged, p.cfg.Analysis),
	}

	weights, err := strategy.Score(table, p.cfg.Strategy, p.rng.Stream("score", 0))
	if err != nil {
		return nil, err
	}
	sets := strategy.GenerateMany(weights, table, p.cfg.Strategy, p.rng.Stream("generate", 0), p.cfg.Output.SetsToGenerate)

	result := &Result{
		RunID:    uuid.NewString(),
		Sets:     sets,
		Snapshot: snapshot,
	}

	if p.cfg.Validation.Mode != "none" {
		report, err := backtest.Validate(ctx, history, upcoming, p.cfg, p.rng)
		if err != nil {
			return nil, err
		}
		result.Report = report
	}

	if latest, err := p.source.LoadLatest(ctx); err != nil {
		return nil, err
	} else if latest != nil {
		result.Latest = checkLatest(*latest, sets)
	}

	if err := p.persist(ctx, merged, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Analyze loads the draw data and returns only the descriptive snapshot
func (p *Pipeline) Analyze(ctx context.Context) (ports.AnalysisSnapshot, error) {
	history, err := p.source.LoadHistorical(ctx)
	if err != nil {
		return ports.AnalysisSnapshot{}, err
	}
	table, err := analysis.BuildTable(history, p.cfg.Strategy)
	if err != nil {
		return ports.AnalysisSnapshot{}, err
	}
	return ports.AnalysisSnapshot{
		Table:        table,
		Temperature:  table.ClassifyTemperature(p.cfg.Analysis.RecencyBins),
		Combinations: analysis.CombinationCounts(history, p.cfg.Analysis),
	}, nil
}

// Generate runs the scoring and generation steps only, without touching the
// reporting or archive collaborators. Used by the API.
func (p *Pipeline) Generate(ctx context.Context, count int) ([]strategy.CandidateSet, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	if count <= 0 {
		count = p.cfg.Output.SetsToGenerate
	}

	history, err := p.source.LoadHistorical(ctx)
	if err != nil {
		return nil, err
	}
	table, err := analysis.BuildTable(history, p.cfg.Strategy)
	if err != nil {
		return nil, err
	}
	weights, err := strategy.Score(table, p.cfg.Strategy, p.rng.Stream("score", 0))
	if err != nil {
		return nil, err
	}
	return strategy.GenerateMany(weights, table, p.cfg.Strategy, p.rng.Stream("generate", 0), count), nil
}

// Backtest runs only the validation engine, optionally overriding the
// configured mode. Used by the API and the validate CLI command.
func (p *Pipeline) Backtest(ctx context.Context, mode string) (*backtest.Report, error) {
	cfg := *p.cfg
	if mode != "" {
		cfg.Validation.Mode = mode
	}

	history, err := p.source.LoadHistorical(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := p.source.LoadUpcoming(ctx)
	if err != nil {
		return nil, err
	}
	return backtest.Validate(ctx, history, upcoming, &cfg, p.rng)
}

func (p *Pipeline) persist(ctx context.Context, merged []draw.Draw, result *Result) error {
	if err := p.sink.WriteSuggestions(result.RunID, result.Sets); err != nil {
		return err
	}
	if p.cfg.Output.SaveAnalysis {
		if err := p.sink.WriteAnalysis(result.Snapshot); err != nil {
			return err
		}
	}
	if result.Report != nil && p.cfg.Validation.SaveReport {
		if err := p.sink.WriteValidation(result.Report); err != nil {
			return err
		}
	}

	if p.archive == nil {
		return nil
	}
	if err := p.archive.EnsureSchema(ctx); err != nil {
		return errors.Wrap(err, "archive schema setup failed")
	}
	if p.cfg.Data.ArchiveUpcoming {
		if err := p.archive.ArchiveDraws(ctx, merged); err != nil {
			return err
		}
	}
	if err := p.archive.SaveCandidates(ctx, result.RunID, result.Sets); err != nil {
		return err
	}
	if result.Report != nil {
		if err := p.archive.SaveReport(ctx, result.Report); err != nil {
			return err
		}
	}
	return nil
}

func checkLatest(latest draw.Draw, sets []strategy.CandidateSet) *LatestCheck {
	check := &LatestCheck{
		DrawNumbers: latest.Sorted(),
	}
	if !latest.Date.IsZero() {
		check.DrawDate = latest.Date.Format("01/02/06")
	}
	for _, set := range sets {
		var matched []int
		for _, n := range set.Numbers {
			if latest.Contains(n) {
				matched = append(matched, n)
			}
		}
		check.Sets = append(check.Sets, SetMatch{
			Numbers: set.Numbers,
			Matches: len(matched),
			Matched: matched,
		})
	}
	return check
}
