package config

import (
	"fmt"
	"math"
	"os"

	"golotto/internal/errors"

	"gopkg.in/yaml.v3"
)

// WeightEpsilon is the tolerance applied when checking that the three
// strategy weights sum to 1.0. The literal numeric values govern; comments
// in source config files do not.
const WeightEpsilon = 1e-3

// Config represents the complete application configuration
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Strategy   StrategyConfig   `yaml:"strategy"`
	Validation ValidationConfig `yaml:"validation"`
	Output     OutputConfig     `yaml:"output"`
	Analysis   AnalysisConfig   `yaml:"analysis"`

	// Database settings come from the environment, never from the file
	Database DatabaseConfig `yaml:"-"`
}

// DataConfig holds draw data file locations and archive behavior
type DataConfig struct {
	HistoricalPath  string `yaml:"historical_path"`
	UpcomingPath    string `yaml:"upcoming_path"`
	LatestPath      string `yaml:"latest_path"`
	StatsDir        string `yaml:"stats_dir"`
	ResultsDir      string `yaml:"results_dir"`
	MergeUpcoming   bool   `yaml:"merge_upcoming"`
	ArchiveUpcoming bool   `yaml:"archive_upcoming"`
}

// StrategyConfig holds the weighted-scoring strategy parameters
type StrategyConfig struct {
	NumberPool          int     `yaml:"number_pool"`
	NumbersToSelect     int     `yaml:"numbers_to_select"`
	FrequencyWeight     float64 `yaml:"frequency_weight"`
	RecentWeight        float64 `yaml:"recent_weight"`
	RandomWeight        float64 `yaml:"random_weight"`
	LowNumberMax        int     `yaml:"low_number_max"`
	LowNumberChance     float64 `yaml:"low_number_chance"`
	HighPrimeMin        int     `yaml:"high_prime_min"`
	HighPrimeChance     float64 `yaml:"high_prime_chance"`
	ColdThreshold       int     `yaml:"cold_threshold"`
	ResurgenceThreshold int     `yaml:"resurgence_threshold"`
}

// ValidationConfig holds backtest settings
type ValidationConfig struct {
	Mode           string `yaml:"mode"` // historical, new_draw, both, none
	TestDraws      int    `yaml:"test_draws"`
	AlertThreshold int    `yaml:"alert_threshold"`
	SaveReport     bool   `yaml:"save_report"`
}

// OutputConfig holds generation output settings
type OutputConfig struct {
	SetsToGenerate int  `yaml:"sets_to_generate"`
	SaveAnalysis   bool `yaml:"save_analysis"`
	Verbose        bool `yaml:"verbose"`
}

// RecencyBins classify numbers as hot/warm/cold by draws since last seen
type RecencyBins struct {
	Hot  int `yaml:"hot"`
	Warm int `yaml:"warm"`
	Cold int `yaml:"cold"`
}

// CombinationAnalysis toggles co-occurrence tabulation per combination size
type CombinationAnalysis struct {
	Pairs       bool `yaml:"pairs"`
	Triplets    bool `yaml:"triplets"`
	Quadruplets bool `yaml:"quadruplets"`
	Quintuplets bool `yaml:"quintuplets"`
	Sixtuplets  bool `yaml:"sixtuplets"`
}

// AnalysisConfig holds descriptive-statistics settings
type AnalysisConfig struct {
	RecencyBins         RecencyBins         `yaml:"recency_bins"`
	TopRange            int                 `yaml:"top_range"`
	MinCombinationCount int                 `yaml:"min_combination_count"`
	CombinationAnalysis CombinationAnalysis `yaml:"combination_analysis"`
}

// DatabaseConfig holds the optional archive database connection
type DatabaseConfig struct {
	URL string
}

// Default returns the built-in configuration defaults
func Default() *Config {
	return &Config{
		Data: DataConfig{
			HistoricalPath:  "data/historical.csv",
			UpcomingPath:    "",
			LatestPath:      "data/latest_draw.csv",
			StatsDir:        "stats/",
			ResultsDir:      "results/",
			MergeUpcoming:   true,
			ArchiveUpcoming: true,
		},
		Strategy: StrategyConfig{
			NumberPool:          55,
			NumbersToSelect:     6,
			FrequencyWeight:     0.4,
			RecentWeight:        0.2,
			RandomWeight:        0.4,
			LowNumberMax:        10,
			LowNumberChance:     0.7,
			HighPrimeMin:        35,
			HighPrimeChance:     0.25,
			ColdThreshold:       50,
			ResurgenceThreshold: 3,
		},
		Validation: ValidationConfig{
			Mode:           "none",
			TestDraws:      300,
			AlertThreshold: 4,
			SaveReport:     true,
		},
		Output: OutputConfig{
			SetsToGenerate: 4,
			SaveAnalysis:   true,
			Verbose:        true,
		},
		Analysis: AnalysisConfig{
			RecencyBins:         RecencyBins{Hot: 3, Warm: 10, Cold: 30},
			TopRange:            10,
			MinCombinationCount: 2,
			CombinationAnalysis: CombinationAnalysis{Pairs: true, Triplets: true},
		},
	}
}

// Load reads configuration from a YAML file layered over the defaults, then
// applies environment overrides and validates the result. An empty path
// yields the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to parse config file")
		}
	}

	cfg.Database.URL = os.Getenv("DATABASE_URL")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every numeric option before any sampling occurs
func (c *Config) Validate() error {
	s := c.Strategy

	if s.NumberPool <= 1 {
		return errors.ConfigInvalid(fmt.Sprintf("number_pool must be > 1, got %d", s.NumberPool))
	}
	if s.NumbersToSelect <= 1 {
		return errors.ConfigInvalid(fmt.Sprintf("numbers_to_select must be > 1, got %d", s.NumbersToSelect))
	}
	if s.NumbersToSelect > s.NumberPool {
		return errors.ConfigInvalid(fmt.Sprintf(
			"numbers_to_select %d exceeds number_pool %d", s.NumbersToSelect, s.NumberPool))
	}
	if err := s.ValidateWeights(); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"low_number_chance": s.LowNumberChance,
		"high_prime_chance": s.HighPrimeChance,
	} {
		if v < 0 || v > 1 {
			return errors.ConfigInvalid(fmt.Sprintf("%s must be in [0,1], got %g", name, v))
		}
	}
	if s.LowNumberMax <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("low_number_max must be > 0, got %d", s.LowNumberMax))
	}
	if s.HighPrimeMin <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("high_prime_min must be > 0, got %d", s.HighPrimeMin))
	}
	if s.ColdThreshold <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("cold_threshold must be > 0, got %d", s.ColdThreshold))
	}
	if s.ResurgenceThreshold < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("resurgence_threshold must be >= 0, got %d", s.ResurgenceThreshold))
	}

	switch c.Validation.Mode {
	case "historical", "new_draw", "both", "none":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown validation mode %q", c.Validation.Mode))
	}
	if c.Validation.TestDraws <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("test_draws must be > 0, got %d", c.Validation.TestDraws))
	}
	if c.Validation.AlertThreshold < 1 || c.Validation.AlertThreshold > s.NumbersToSelect {
		return errors.ConfigInvalid(fmt.Sprintf(
			"alert_threshold must be in [1,%d], got %d", s.NumbersToSelect, c.Validation.AlertThreshold))
	}

	if c.Output.SetsToGenerate <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("sets_to_generate must be > 0, got %d", c.Output.SetsToGenerate))
	}
	if c.Analysis.TopRange <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("top_range must be > 0, got %d", c.Analysis.TopRange))
	}
	if c.Analysis.MinCombinationCount < 1 {
		return errors.ConfigInvalid(fmt.Sprintf(
			"min_combination_count must be >= 1, got %d", c.Analysis.MinCombinationCount))
	}
	return nil
}

// ValidateWeights checks the weight-sum invariant in isolation. The scorer
// calls this again defensively so a hand-built StrategyConfig cannot bypass
// the epsilon check.
func (s StrategyConfig) ValidateWeights() error {
	for name, v := range map[string]float64{
		"frequency_weight": s.FrequencyWeight,
		"recent_weight":    s.RecentWeight,
		"random_weight":    s.RandomWeight,
	} {
		if v < 0 || v > 1 {
			return errors.ConfigInvalid(fmt.Sprintf("%s must be in [0,1], got %g", name, v))
		}
	}
	sum := s.FrequencyWeight + s.RecentWeight + s.RandomWeight
	if math.Abs(sum-1.0) > WeightEpsilon {
		return errors.ConfigInvalid(fmt.Sprintf(
			"frequency_weight + recent_weight + random_weight must sum to 1.0, got %g", sum))
	}
	return nil
}
