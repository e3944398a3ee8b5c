package app

import (
	"github.com/pkg/errors"

	"github.com/bft-labs/mortplot/internal/domain"
	"github.com/bft-labs/mortplot/internal/render"
)

// Defaults for a run with no overrides.
const (
	DefaultInputPath  = "data/hypertension_cvd_mortality.csv"
	DefaultOutputDir  = "charts"
	DefaultMinSamples = 5
)

// Output file names, one per chart.
const (
	TrendFile    = "mortality_trend.png"
	AgeGroupFile = "age_group_distribution.png"
	RaceFile     = "race_comparison.png"
)

// Config is everything a pipeline run needs. It is passed by value; nothing
// reads global state.
type Config struct {
	// InputPath is the CSV file to load.
	InputPath string

	// OutputDir receives the chart files. Created if absent.
	OutputDir string

	// MaxRows caps the rows read from InputPath. Zero reads all rows.
	MaxRows int

	// MinSamples is the smallest category size drawn in the race chart.
	MinSamples int

	// Columns is the load allow-list. Empty means domain.DefaultColumns().
	Columns []string

	Width  int
	Height int

	// Caption stamps the source name and row count on every chart.
	Caption bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		InputPath:  DefaultInputPath,
		OutputDir:  DefaultOutputDir,
		MinSamples: DefaultMinSamples,
		Columns:    domain.DefaultColumns(),
		Width:      render.DefaultWidth,
		Height:     render.DefaultHeight,
		Caption:    true,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}
	if c.OutputDir == "" {
		return errors.New("output dir is required")
	}
	if c.MaxRows < 0 {
		return errors.Errorf("max rows must not be negative, got %d", c.MaxRows)
	}
	if c.MinSamples < 1 {
		return errors.Errorf("min samples must be at least 1, got %d", c.MinSamples)
	}
	if c.Width < 0 || c.Height < 0 {
		return errors.Errorf("chart size must not be negative, got %dx%d", c.Width, c.Height)
	}
	return nil
}

func (c Config) columns() []string {
	if len(c.Columns) == 0 {
		return domain.DefaultColumns()
	}
	return c.Columns
}
