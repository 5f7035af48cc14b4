package ports

import (
	"golotto/domain/analysis"
	"golotto/domain/backtest"
	"golotto/domain/strategy"
)

// AnalysisSnapshot bundles the descriptive statistics handed to reporting
type AnalysisSnapshot struct {
	Table        *analysis.Table               `json:"table"`
	Temperature  analysis.Temperature          `json:"temperature"`
	Combinations map[int][]analysis.ComboCount `json:"combinations,omitempty"`
}

// ReportSink writes run artifacts for human consumption. Implementations
// decide the format (CSV, JSON, XLSX, markdown).
type ReportSink interface {
	// WriteSuggestions persists the generated candidate sets
	WriteSuggestions(runID string, sets []strategy.CandidateSet) error

	// WriteValidation persists a finalized validation report
	WriteValidation(report *backtest.Report) error

	// WriteAnalysis persists the descriptive analysis snapshot
	WriteAnalysis(snapshot AnalysisSnapshot) error
}
