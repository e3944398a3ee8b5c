// Package memory provides in-memory implementations of the pipeline ports.
// They let the pipeline run against a table built in code and keep rendered
// charts out of the file system.
package memory

import (
	"context"

	"github.com/bft-labs/mortplot/internal/domain"
)

// Source implements ports.DatasetSource over a table built in code.
type Source struct {
	name    string
	dataset domain.Dataset
	err     error
}

// NewSource returns a Source that always yields ds.
func NewSource(name string, ds domain.Dataset) *Source {
	return &Source{name: name, dataset: ds}
}

// NewFailingSource returns a Source whose Load always fails with err.
func NewFailingSource(name string, err error) *Source {
	return &Source{name: name, err: err}
}

// FromRecords builds a Source from a header and string rows.
func FromRecords(name string, header []string, rows [][]string) (*Source, error) {
	ds, err := domain.NewDataset(header, rows)
	if err != nil {
		return nil, err
	}
	return NewSource(name, ds), nil
}

func (s *Source) Load(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, domain.LoadFailure(err, "load %s", s.name)
	}
	if s.err != nil {
		return domain.Dataset{}, s.err
	}
	return s.dataset, nil
}

func (s *Source) Describe() string { return s.name }
