package app

import (
	"github.com/bft-labs/mortplot/internal/ports"
	"github.com/bft-labs/mortplot/pkg/log"
)

// Option configures optional behavior of a Pipeline.
type Option func(*options)

type options struct {
	logger log.Logger
	source ports.DatasetSource
	store  ports.ChartStore
}

// WithLogger sets the logger. If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSource replaces the CSV loader, e.g. with an in-memory table.
func WithSource(source ports.DatasetSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithChartStore replaces the output directory writer.
func WithChartStore(store ports.ChartStore) Option {
	return func(o *options) {
		o.store = store
	}
}
