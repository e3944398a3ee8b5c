package main

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"

	"github.com/bft-labs/mortplot/internal/app"
	"github.com/bft-labs/mortplot/internal/cliconfig"
	"github.com/bft-labs/mortplot/internal/domain"
	"github.com/bft-labs/mortplot/internal/watch"
	"github.com/bft-labs/mortplot/pkg/log"
)

// toAppConfig maps the CLI settings onto the pipeline configuration. Fields
// the CLI does not expose keep their pipeline defaults.
func toAppConfig(cfg cliconfig.Config) (app.Config, error) {
	out := app.DefaultConfig()
	if err := copier.Copy(&out, &cfg); err != nil {
		return app.Config{}, errors.Wrap(err, "map config")
	}
	return out, out.Validate()
}

// run performs the initial pass and, in watch mode, keeps redrawing until
// ctx is cancelled. Only the initial pass can fail the process.
func run(ctx context.Context, cfg cliconfig.Config, logger log.Logger) error {
	appCfg, err := toAppConfig(cfg)
	if err != nil {
		return err
	}

	pipeline := app.NewPipeline(appCfg, app.WithLogger(logger))
	if _, err := pipeline.Run(ctx); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}

	w := watch.New(cfg.InputPath,
		func(ctx context.Context) error {
			_, err := pipeline.Run(ctx)
			return err
		},
		watch.WithDebounce(cfg.Debounce),
		watch.WithLogger(logger),
	)
	if err := w.Prime(); err != nil {
		return err
	}
	return w.Watch(ctx)
}

func configFields(cfg cliconfig.Config) []log.Field {
	return []log.Field{
		log.String("input", cfg.InputPath),
		log.String("output_dir", cfg.OutputDir),
		log.Int("max_rows", cfg.MaxRows),
		log.Int("min_samples", cfg.MinSamples),
		log.Int("width", cfg.Width),
		log.Int("height", cfg.Height),
		log.Bool("caption", cfg.Caption),
		log.Bool("watch", cfg.Watch),
		log.String("debounce", cfg.Debounce.String()),
	}
}

func errorFields(err error) []log.Field {
	fields := []log.Field{log.Err(err)}
	if kind := domain.KindOf(err); kind != domain.KindUnknown {
		fields = append(fields, log.String("kind", kind.String()), log.Bool("fatal", kind.Fatal()))
	}
	return fields
}
