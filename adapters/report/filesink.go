// Package report writes run artifacts: suggestions CSV, validation report
// JSON, an analysis XLSX workbook and a markdown summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golotto/domain/strategy"
	"golotto/internal"
	"golotto/internal/config"
	"golotto/internal/errors"
	"golotto/ports"

	"golotto/domain/backtest"
)

// FileSink implements ports.ReportSink over the configured stats/results
// directories
type FileSink struct {
	statsDir   string
	resultsDir string
	log        *internal.Logger
}

// NewFileSink creates a file-based report sink
func NewFileSink(data config.DataConfig, log *internal.Logger) *FileSink {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &FileSink{
		statsDir:   data.StatsDir,
		resultsDir: data.ResultsDir,
		log:        log,
	}
}

// WriteSuggestions saves generated candidate sets as CSV, one row per set
func (s *FileSink) WriteSuggestions(runID string, sets []strategy.CandidateSet) error {
	if err := os.MkdirAll(s.resultsDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create results directory")
	}
	path := filepath.Join(s.resultsDir, "suggestions.csv")

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create suggestions file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"run_id", "numbers", "rules"}); err != nil {
		return errors.Wrap(err, "failed to write suggestions header")
	}
	for _, set := range sets {
		row := []string{runID, joinNumbers(set.Numbers), strings.Join(set.Rules, "|")}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "failed to write suggestion row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "failed to flush suggestions file")
	}
	s.log.Info("wrote %d suggestions to %s", len(sets), path)
	return nil
}

// WriteValidation saves a finalized validation report as indented JSON
func (s *FileSink) WriteValidation(r *backtest.Report) error {
	if err := os.MkdirAll(s.statsDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create stats directory")
	}
	path := filepath.Join(s.statsDir, "validation_report.json")

	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal validation report")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrap(err, "failed to write validation report")
	}
	s.log.Info("wrote validation report %s to %s", r.RunID, path)
	return nil
}

// WriteAnalysis saves the descriptive analysis as an XLSX workbook plus a
// markdown summary
func (s *FileSink) WriteAnalysis(snapshot ports.AnalysisSnapshot) error {
	if err := os.MkdirAll(s.statsDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create stats directory")
	}

	xlsxPath := filepath.Join(s.statsDir, "analysis.xlsx")
	if err := writeWorkbook(xlsxPath, snapshot); err != nil {
		return errors.Wrap(err, "failed to write analysis workbook")
	}

	mdPath := filepath.Join(s.statsDir, "analysis.md")
	md := BuildAnalysisMarkdown(snapshot)
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return errors.Wrap(err, "failed to write analysis markdown")
	}
	s.log.Info("wrote analysis to %s and %s", xlsxPath, mdPath)
	return nil
}

func joinNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, "-")
}

var _ ports.ReportSink = (*FileSink)(nil)
