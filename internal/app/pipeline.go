// Package app wires the load, clean and render stages into a single run.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bft-labs/mortplot/internal/adapters/csv"
	"github.com/bft-labs/mortplot/internal/adapters/fs"
	"github.com/bft-labs/mortplot/internal/domain"
	"github.com/bft-labs/mortplot/internal/ports"
	"github.com/bft-labs/mortplot/pkg/log"
)

// Pipeline runs Loader -> Cleaner -> Visualizer sequentially.
type Pipeline struct {
	config     Config
	source     ports.DatasetSource
	visualizer *Visualizer
	logger     log.Logger
}

// NewPipeline creates a Pipeline for cfg. Without options it reads
// cfg.InputPath from disk and writes into cfg.OutputDir.
func NewPipeline(cfg Config, opts ...Option) *Pipeline {
	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		o.source = csv.NewSource(cfg.InputPath,
			csv.WithMaxRows(cfg.MaxRows),
			csv.WithColumns(cfg.columns()...),
			csv.WithLogger(o.logger),
		)
	}
	if o.store == nil {
		o.store = fs.NewChartDirectory(cfg.OutputDir)
	}
	return &Pipeline{
		config:     cfg,
		source:     o.source,
		visualizer: NewVisualizer(o.store, cfg, o.logger),
		logger:     o.logger,
	}
}

// Run executes one pass. A LoadFailure leaves the output untouched.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	raw, err := p.source.Load(ctx)
	if err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	cleaned := domain.Clean(raw)
	for _, r := range domain.SkippedRenames(raw) {
		p.logger.Debug("rename skipped, target column already present",
			log.String("from", r.From),
			log.String("to", r.To),
		)
	}
	p.logger.Info("dataset cleaned",
		log.Int("rows_in", raw.Len()),
		log.Int("rows_out", cleaned.Len()),
		log.Int("dropped", raw.Len()-cleaned.Len()),
	)
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	report, err := p.visualizer.Render(ctx, cleaned, p.caption(cleaned))
	if err != nil {
		return report, err
	}
	p.logger.Info("run complete",
		log.Int("written", len(report.Written)),
		log.Int("skipped", len(report.Skipped)),
		log.Int("failed", len(report.Failed)),
	)
	return report, nil
}

func (p *Pipeline) caption(ds domain.Dataset) string {
	if !p.config.Caption {
		return ""
	}
	return fmt.Sprintf("Source: %s (%d rows)", filepath.Base(p.source.Describe()), ds.Len())
}
