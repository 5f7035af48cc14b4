// Package postgres archives draws, candidate sets and validation reports in
// PostgreSQL. The archive is optional; the pipeline only wires it in when
// DATABASE_URL is configured.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golotto/domain/backtest"
	"golotto/domain/draw"
	"golotto/domain/strategy"
	"golotto/internal/errors"
	"golotto/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// archive implements the ports.Archive interface
type archive struct {
	db *sqlx.DB
}

// NewArchive creates a PostgreSQL-backed archive
func NewArchive(db *sqlx.DB) ports.Archive {
	return &archive{db: db}
}

// Connect opens and pings the archive database
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to archive database")
	}
	return db, nil
}

// EnsureSchema creates the archive tables when missing
func (a *archive) EnsureSchema(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS draws (
			draw_index INTEGER PRIMARY KEY,
			draw_date  DATE,
			numbers    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS candidate_sets (
			id      UUID PRIMARY KEY,
			run_id  TEXT NOT NULL,
			numbers TEXT NOT NULL,
			rules   TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS validation_reports (
			run_id     TEXT PRIMARY KEY,
			mode       TEXT NOT NULL,
			evaluated  INTEGER NOT NULL,
			skipped    INTEGER NOT NULL,
			alert_count INTEGER NOT NULL,
			max_matches INTEGER NOT NULL,
			report     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range schema {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to create archive schema")
		}
	}
	return nil
}

// ArchiveDraws stores historical draws, skipping ones already present
func (a *archive) ArchiveDraws(ctx context.Context, draws []draw.Draw) error {
	query := `INSERT INTO draws (draw_index, draw_date, numbers)
		VALUES ($1, $2, $3)
		ON CONFLICT (draw_index) DO NOTHING`

	for _, d := range draws {
		if _, err := a.db.ExecContext(ctx, query, d.Index, d.Date, formatNumbers(d.Numbers)); err != nil {
			return errors.Wrapf(err, "failed to archive draw %d", d.Index)
		}
	}
	return nil
}

// SaveCandidates stores the candidate sets generated in one run
func (a *archive) SaveCandidates(ctx context.Context, runID string, sets []strategy.CandidateSet) error {
	query := `INSERT INTO candidate_sets (id, run_id, numbers, rules)
		VALUES ($1, $2, $3, $4)`

	for _, set := range sets {
		_, err := a.db.ExecContext(ctx, query,
			uuid.NewString(), runID, formatNumbers(set.Numbers), strings.Join(set.Rules, "|"))
		if err != nil {
			return errors.Wrapf(err, "failed to save candidate set for run %s", runID)
		}
	}
	return nil
}

// SaveReport stores a finalized validation report with its full JSON payload
func (a *archive) SaveReport(ctx context.Context, report *backtest.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to marshal validation report")
	}

	query := `INSERT INTO validation_reports
		(run_id, mode, evaluated, skipped, alert_count, max_matches, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id) DO NOTHING`

	_, err = a.db.ExecContext(ctx, query,
		report.RunID, report.Mode, report.Evaluated, report.Skipped,
		report.AlertCount, report.MaxMatches, payload)
	if err != nil {
		return errors.Wrapf(err, "failed to save validation report %s", report.RunID)
	}
	return nil
}

func formatNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, "-")
}
