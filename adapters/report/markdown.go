package report

import (
	"fmt"
	"sort"
	"strings"

	"golotto/domain/backtest"
	"golotto/domain/strategy"
	"golotto/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// BuildAnalysisMarkdown renders the descriptive analysis snapshot as a
// markdown document
func BuildAnalysisMarkdown(snapshot ports.AnalysisSnapshot) string {
	var b strings.Builder

	b.WriteString("# Draw Analysis\n\n")
	fmt.Fprintf(&b, "Draws analyzed: %d (recent window %d)\n\n",
		snapshot.Table.DrawCount, snapshot.Table.RecentWindow)

	b.WriteString("## Temperature\n\n")
	fmt.Fprintf(&b, "- hot: %s\n", joinInts(snapshot.Temperature.Hot))
	fmt.Fprintf(&b, "- warm: %s\n", joinInts(snapshot.Temperature.Warm))
	fmt.Fprintf(&b, "- cold: %s\n\n", joinInts(snapshot.Temperature.Cold))

	b.WriteString("## Number statistics\n\n")
	b.WriteString("| Number | Total | Recent | Since Seen | Flags |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, s := range snapshot.Table.Stats {
		var flags []string
		if s.Cold {
			flags = append(flags, "cold")
		}
		if s.Prime {
			flags = append(flags, "prime")
		}
		if s.HighPrime {
			flags = append(flags, "high-prime")
		}
		fmt.Fprintf(&b, "| %d | %d | %d | %d | %s |\n",
			s.Number, s.TotalCount, s.RecentCount, s.DrawsSinceSeen, strings.Join(flags, " "))
	}
	b.WriteString("\n")

	if len(snapshot.Combinations) > 0 {
		b.WriteString("## Combinations\n\n")
		sizes := make([]int, 0, len(snapshot.Combinations))
		for size := range snapshot.Combinations {
			sizes = append(sizes, size)
		}
		sort.Ints(sizes)
		for _, size := range sizes {
			fmt.Fprintf(&b, "### Size %d\n\n", size)
			for _, cc := range snapshot.Combinations[size] {
				fmt.Fprintf(&b, "- %s: %d\n", joinInts(cc.Numbers), cc.Count)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// BuildRunMarkdown renders generated sets and the optional validation report
// as a markdown document
func BuildRunMarkdown(runID string, sets []strategy.CandidateSet, rep *backtest.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Run %s\n\n", runID)

	b.WriteString("## Suggested sets\n\n")
	for i, set := range sets {
		line := joinInts(set.Numbers)
		if len(set.Rules) > 0 {
			line += fmt.Sprintf(" (rules: %s)", strings.Join(set.Rules, ", "))
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	b.WriteString("\n")

	if rep != nil {
		b.WriteString("## Validation\n\n")
		fmt.Fprintf(&b, "- mode: %s\n", rep.Mode)
		fmt.Fprintf(&b, "- evaluated cutoffs: %d (skipped %d)\n", rep.Evaluated, rep.Skipped)
		fmt.Fprintf(&b, "- best match overall: %d\n", rep.MaxMatches)
		fmt.Fprintf(&b, "- cutoffs at alert threshold %d: %d (%.2f%%)\n",
			rep.AlertThreshold, rep.AlertCount, rep.AlertRate*100)
		fmt.Fprintf(&b, "- mean best match: %.2f, median %.1f\n\n", rep.MeanBest, rep.MedianBest)

		b.WriteString("| Matches | Cutoffs |\n| --- | --- |\n")
		maxKey := 0
		for k := range rep.Histogram {
			if k > maxKey {
				maxKey = k
			}
		}
		for m := 0; m <= maxKey; m++ {
			fmt.Fprintf(&b, "| %d | %d |\n", m, rep.Histogram[m])
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML converts a markdown document to HTML for the API's report view
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
