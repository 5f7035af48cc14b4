package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golotto/adapters/seedrng"
	"golotto/domain/analysis"
	"golotto/domain/backtest"
	"golotto/domain/draw"
	"golotto/domain/strategy"
	"golotto/internal/config"
	"golotto/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(t *testing.T) ports.AnalysisSnapshot {
	t.Helper()
	cfg := config.Default()

	history := make([]draw.Draw, 40)
	for i := range history {
		numbers := make([]int, 6)
		for j := 0; j < 6; j++ {
			numbers[j] = (i+7*j)%55 + 1
		}
		history[i] = draw.Draw{Index: i, Numbers: numbers}
	}

	table, err := analysis.BuildTable(history, cfg.Strategy)
	require.NoError(t, err)

	return ports.AnalysisSnapshot{
		Table:        table,
		Temperature:  table.ClassifyTemperature(cfg.Analysis.RecencyBins),
		Combinations: analysis.CombinationCounts(history, cfg.Analysis),
	}
}

func testReport(t *testing.T) *backtest.Report {
	t.Helper()
	cfg := config.Default()
	cfg.Validation.Mode = "historical"
	cfg.Validation.TestDraws = 15

	history := make([]draw.Draw, 40)
	for i := range history {
		numbers := make([]int, 6)
		for j := 0; j < 6; j++ {
			numbers[j] = (i+7*j)%55 + 1
		}
		history[i] = draw.Draw{Index: i, Numbers: numbers}
	}

	rep, err := backtest.Validate(context.Background(), history, nil, cfg, seedrng.New(1))
	require.NoError(t, err)
	return rep
}

func TestWriteSuggestions(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(config.DataConfig{StatsDir: dir, ResultsDir: dir}, nil)

	sets := []strategy.CandidateSet{
		{Numbers: []int{3, 9, 17, 25, 41, 52}, Rules: []string{strategy.RuleLowNumber}},
		{Numbers: []int{1, 12, 23, 34, 45, 55}},
	}
	require.NoError(t, sink.WriteSuggestions("run-1", sets))

	f, err := os.Open(filepath.Join(dir, "suggestions.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"run_id", "numbers", "rules"}, rows[0])
	assert.Equal(t, []string{"run-1", "3-9-17-25-41-52", "low_number"}, rows[1])
	assert.Equal(t, []string{"run-1", "1-12-23-34-45-55", ""}, rows[2])
}

func TestWriteValidation(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(config.DataConfig{StatsDir: dir, ResultsDir: dir}, nil)

	rep := testReport(t)
	require.NoError(t, sink.WriteValidation(rep))

	raw, err := os.ReadFile(filepath.Join(dir, "validation_report.json"))
	require.NoError(t, err)

	var decoded backtest.Report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, rep.RunID, decoded.RunID)
	assert.Equal(t, rep.Evaluated, decoded.Evaluated)
	assert.Equal(t, rep.Histogram, decoded.Histogram)
}

func TestWriteAnalysis(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(config.DataConfig{StatsDir: dir, ResultsDir: dir}, nil)

	require.NoError(t, sink.WriteAnalysis(testSnapshot(t)))

	for _, name := range []string{"analysis.xlsx", "analysis.md"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotZero(t, info.Size(), name)
	}
}

func TestBuildAnalysisMarkdown(t *testing.T) {
	md := BuildAnalysisMarkdown(testSnapshot(t))

	assert.Contains(t, md, "# Draw Analysis")
	assert.Contains(t, md, "## Temperature")
	assert.Contains(t, md, "## Number statistics")
	// one table row per pool number plus the header and separator rows
	assert.Equal(t, 55+2, strings.Count(md, "\n| "))
}

func TestBuildRunMarkdown(t *testing.T) {
	sets := []strategy.CandidateSet{
		{Numbers: []int{3, 9, 17, 25, 41, 52}, Rules: []string{strategy.RuleHighPrime}},
	}
	rep := testReport(t)

	md := BuildRunMarkdown(rep.RunID, sets, rep)
	assert.Contains(t, md, "# Run "+rep.RunID)
	assert.Contains(t, md, "## Suggested sets")
	assert.Contains(t, md, "## Validation")
	assert.Contains(t, md, "high_prime")

	withoutReport := BuildRunMarkdown("run-2", sets, nil)
	assert.NotContains(t, withoutReport, "## Validation")
}

func TestRenderHTML(t *testing.T) {
	html := string(RenderHTML("# Title\n\n- item\n"))
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<li>item</li>")
}
