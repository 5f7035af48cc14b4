package ports

import (
	"context"

	"golotto/domain/backtest"
	"golotto/domain/draw"
	"golotto/domain/strategy"
)

// Archive persists draws, generated candidate sets and finalized validation
// reports. The core never depends on it; the pipeline wires it in when an
// archive database is configured.
type Archive interface {
	// EnsureSchema creates the archive tables when missing
	EnsureSchema(ctx context.Context) error

	// ArchiveDraws stores historical draws, skipping ones already present
	ArchiveDraws(ctx context.Context, draws []draw.Draw) error

	// SaveCandidates stores the candidate sets generated in one run
	SaveCandidates(ctx context.Context, runID string, sets []strategy.CandidateSet) error

	// SaveReport stores a finalized validation report
	SaveReport(ctx context.Context, report *backtest.Report) error
}
