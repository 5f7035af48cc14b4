package main

import (
	"fmt"
	"os"
	"time"

	"golotto/adapters/drawdata"
	"golotto/adapters/postgres"
	"golotto/adapters/report"
	"golotto/adapters/seedrng"
	"golotto/app"
	"golotto/domain/backtest"
	"golotto/internal"
	"golotto/internal/config"
	"golotto/ports"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	var seed int64

	rootCmd := &cobra.Command{
		Use:   "golotto",
		Short: "Weighted lottery number generation with backtest validation",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to configuration file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")

	rootCmd.AddCommand(
		newGenerateCmd(&configPath, &seed),
		newValidateCmd(&configPath, &seed),
		newAnalyzeCmd(&configPath, &seed),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildPipeline(configPath string, seed int64) (*app.Pipeline, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log := internal.NewDefaultLogger()
	source := drawdata.NewReader(cfg.Data, cfg.Strategy, log)
	sink := report.NewFileSink(cfg.Data, log)

	var archive ports.Archive
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		archive = postgres.NewArchive(db)
		log.Info("draw archive enabled")
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := seedrng.New(seed)

	return app.New(cfg, log, source, sink, archive, rng), cfg, nil
}

func newGenerateCmd(configPath *string, seed *int64) *cobra.Command {
	var sets int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate candidate sets and optionally backtest the strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, cfg, err := buildPipeline(*configPath, *seed)
			if err != nil {
				return err
			}
			if sets > 0 {
				cfg.Output.SetsToGenerate = sets
			}
			result, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("run %s\n\n", result.RunID)
			for i, set := range result.Sets {
				fmt.Printf("set %d: %v", i+1, set.Numbers)
				if len(set.Rules) > 0 {
					fmt.Printf("  (rules: %v)", set.Rules)
				}
				fmt.Println()
			}
			if result.Latest != nil {
				fmt.Printf("\nlatest draw %s: %v\n", result.Latest.DrawDate, result.Latest.DrawNumbers)
				for _, m := range result.Latest.Sets {
					fmt.Printf("  %v -> %d matches %v\n", m.Numbers, m.Matches, m.Matched)
				}
			}
			if result.Report != nil {
				printReport(result.Report)
			}
			if cfg.Output.Verbose {
				fmt.Println()
				fmt.Print(report.BuildAnalysisMarkdown(result.Snapshot))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&sets, "sets", 0, "number of sets to generate (0 uses the configured default)")
	return cmd
}

func newValidateCmd(configPath *string, seed *int64) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Backtest the strategy against historical draws",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, _, err := buildPipeline(*configPath, *seed)
			if err != nil {
				return err
			}
			rep, err := pipeline.Backtest(cmd.Context(), mode)
			if err != nil {
				return err
			}
			printReport(rep)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "historical", "validation mode: historical, new_draw, both, none")
	return cmd
}

func newAnalyzeCmd(configPath *string, seed *int64) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Print descriptive draw statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, _, err := buildPipeline(*configPath, *seed)
			if err != nil {
				return err
			}
			snapshot, err := pipeline.Analyze(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(report.BuildAnalysisMarkdown(snapshot))
			return nil
		},
	}
}

func printReport(rep *backtest.Report) {
	fmt.Printf("\nvalidation (%s): %d cutoffs evaluated, %d skipped\n",
		rep.Mode, rep.Evaluated, rep.Skipped)
	fmt.Printf("best match overall: %d, mean best %.2f, alert rate %.2f%%\n",
		rep.MaxMatches, rep.MeanBest, rep.AlertRate*100)
	for m := 0; m <= rep.MaxMatches; m++ {
		fmt.Printf("%d matches: %d\n", m, rep.Histogram[m])
	}
}
