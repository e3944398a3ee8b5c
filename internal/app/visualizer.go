package app

import (
	"context"

	"github.com/bft-labs/mortplot/internal/aggregate"
	"github.com/bft-labs/mortplot/internal/domain"
	"github.com/bft-labs/mortplot/internal/ports"
	"github.com/bft-labs/mortplot/internal/render"
	"github.com/bft-labs/mortplot/pkg/log"
)

// ChartNote records why a chart was not written.
type ChartNote struct {
	File   string
	Reason string
	Err    error
}

// Report summarizes one Visualizer run.
type Report struct {
	// Written lists the saved chart locations in chart order.
	Written []string

	// Skipped lists charts that could not be drawn from the data.
	Skipped []ChartNote

	// Failed lists charts that failed to render or save.
	Failed []ChartNote
}

// OK reports whether every chart was written.
func (r Report) OK() bool {
	return len(r.Skipped) == 0 && len(r.Failed) == 0
}

// chartJob draws one chart from the cleaned table. dropped counts the rows
// the chart could not place.
type chartJob struct {
	file string
	draw func(ds domain.Dataset, opts render.Options) (data []byte, dropped int, err error)
}

// Visualizer renders the fixed chart set into a ChartStore.
type Visualizer struct {
	store  ports.ChartStore
	logger log.Logger
	opts   render.Options
	jobs   []chartJob
}

// NewVisualizer creates a Visualizer writing into store.
func NewVisualizer(store ports.ChartStore, cfg Config, logger log.Logger) *Visualizer {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	minSamples := cfg.MinSamples
	return &Visualizer{
		store:  store,
		logger: logger,
		opts:   render.Options{Width: cfg.Width, Height: cfg.Height},
		jobs: []chartJob{
			{file: TrendFile, draw: drawTrend},
			{file: AgeGroupFile, draw: drawAgeGroups},
			{file: RaceFile, draw: func(ds domain.Dataset, opts render.Options) ([]byte, int, error) {
				return drawRaceSpread(ds, minSamples, opts)
			}},
		},
	}
}

// Render draws every chart from ds. caption, when non-empty, is stamped on
// each image. A chart that cannot be drawn or saved is recorded in the report
// and the others still run. The returned error is set only for fatal
// conditions: an empty table or an output location that cannot be created.
func (v *Visualizer) Render(ctx context.Context, ds domain.Dataset, caption string) (Report, error) {
	var report Report

	if ds.Len() == 0 {
		return report, domain.LoadFailure(nil, "dataset is empty after filtering")
	}
	if err := v.store.Prepare(ctx); err != nil {
		if !domain.KindOf(err).Fatal() {
			err = domain.DirectoryCreationFailure(err, "chart output")
		}
		return report, err
	}

	opts := v.opts
	opts.Caption = caption

	for _, job := range v.jobs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		data, dropped, err := job.draw(ds, opts)
		if dropped > 0 {
			v.logger.Warn("rows left out of chart",
				log.String("chart", job.file),
				log.Int("rows", dropped),
				log.String("reason", "missing or unparseable grouping value"),
			)
		}
		if err != nil {
			note := ChartNote{File: job.file, Reason: domain.CauseOf(err), Err: err}
			if domain.KindOf(err) == domain.KindChartSkip {
				v.logger.Warn("chart skipped",
					log.String("chart", job.file),
					log.String("reason", note.Reason),
				)
				report.Skipped = append(report.Skipped, note)
				continue
			}
			v.logger.Error("chart render failed", log.String("chart", job.file), log.Err(err))
			report.Failed = append(report.Failed, note)
			continue
		}

		path, err := v.store.Save(ctx, job.file, data)
		if err != nil {
			v.logger.Error("chart save failed", log.String("chart", job.file), log.Err(err))
			report.Failed = append(report.Failed, ChartNote{File: job.file, Reason: err.Error(), Err: err})
			continue
		}
		v.logger.Info("chart written", log.String("chart", job.file), log.String("path", path))
		report.Written = append(report.Written, path)
	}
	return report, nil
}

func drawTrend(ds domain.Dataset, opts render.Options) ([]byte, int, error) {
	points, dropped, err := aggregate.MeanByYear(ds)
	if err != nil {
		return nil, dropped, err
	}
	data, err := render.TrendChart(points, opts)
	return data, dropped, err
}

func drawAgeGroups(ds domain.Dataset, opts render.Options) ([]byte, int, error) {
	counts, dropped, err := aggregate.CountBy(ds, domain.ColumnAgeGroup)
	if err != nil {
		return nil, dropped, err
	}
	data, err := render.CountChart("Distribution of Records by Age Group", "Age group", counts, opts)
	return data, dropped, err
}

func drawRaceSpread(ds domain.Dataset, minSamples int, opts render.Options) ([]byte, int, error) {
	spread, dropped, err := aggregate.SpreadBy(ds, domain.ColumnRace, minSamples)
	if err != nil {
		return nil, dropped, err
	}
	data, err := render.SpreadChart("Mortality Rate by Race", "Race", spread, opts)
	return data, dropped, err
}
