// Package mortplot turns a mortality CSV table into summary charts.
//
// Example usage:
//
//	cfg := mortplot.DefaultConfig()
//	cfg.InputPath = "data/hypertension_cvd_mortality.csv"
//	cfg.OutputDir = "charts"
//	report, err := mortplot.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Written)
package mortplot

import (
	"context"
	"io"

	"github.com/bft-labs/mortplot/internal/adapters/memory"
	"github.com/bft-labs/mortplot/internal/app"
	"github.com/bft-labs/mortplot/internal/domain"
	"github.com/bft-labs/mortplot/internal/ports"
	"github.com/bft-labs/mortplot/pkg/log"
)

// Config holds the settings of a run. Use DefaultConfig() to get a Config
// with sensible defaults.
type Config = app.Config

// Report lists the charts written, skipped and failed by a run.
type Report = app.Report

// Option configures optional behavior of Run.
type Option = app.Option

// DatasetSource produces the raw table. The default reads Config.InputPath.
type DatasetSource = ports.DatasetSource

// ChartStore receives rendered PNG images. The default writes into
// Config.OutputDir.
type ChartStore = ports.ChartStore

// Errors reported by Run. Match with errors.Is.
var (
	ErrLoadFailure              error = domain.ErrLoadFailure
	ErrChartSkip                error = domain.ErrChartSkip
	ErrDirectoryCreationFailure error = domain.ErrDirectoryCreationFailure
)

// Output file names.
const (
	TrendFile    = app.TrendFile
	AgeGroupFile = app.AgeGroupFile
	RaceFile     = app.RaceFile
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return app.DefaultConfig()
}

// Run loads, cleans and plots once. It returns an error only for a load
// failure or an output directory that cannot be created; per-chart problems
// are listed in the Report.
func Run(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	return app.NewPipeline(cfg, opts...).Run(ctx)
}

// WithLogger sends structured logs to l.
func WithLogger(l log.Logger) Option {
	return app.WithLogger(l)
}

// WithConsoleLogger writes human readable logs to w.
func WithConsoleLogger(w io.Writer, verbose bool) Option {
	return app.WithLogger(log.NewZerologAdapter(w, verbose))
}

// WithSource replaces the CSV loader.
func WithSource(src DatasetSource) Option {
	return app.WithSource(src)
}

// WithChartStore replaces the output directory writer.
func WithChartStore(store ChartStore) Option {
	return app.WithChartStore(store)
}

// FromRecords builds an in-memory DatasetSource from a header and string
// rows, typed the same way the CSV loader types them.
func FromRecords(name string, header []string, rows [][]string) (DatasetSource, error) {
	return memory.FromRecords(name, header, rows)
}
