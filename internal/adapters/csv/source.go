// Package csv loads the mortality table from a delimited text file.
package csv

import (
	"bufio"
	"context"
	stdcsv "encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/bft-labs/mortplot/internal/domain"
	"github.com/bft-labs/mortplot/pkg/log"
)

const utf8BOM = "\ufeff"

// Source implements ports.DatasetSource over a CSV file.
type Source struct {
	path    string
	maxRows int
	columns []string
	logger  log.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithMaxRows caps the number of data rows read. Zero or less reads all rows.
func WithMaxRows(n int) Option {
	return func(s *Source) { s.maxRows = n }
}

// WithColumns sets the column allow-list. Every listed column must exist.
func WithColumns(columns ...string) Option {
	return func(s *Source) {
		if len(columns) > 0 {
			s.columns = append([]string(nil), columns...)
		}
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l log.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSource creates a Source reading path.
func NewSource(path string, opts ...Option) *Source {
	s := &Source{
		path:    path,
		columns: domain.DefaultColumns(),
		logger:  log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Describe returns the file path.
func (s *Source) Describe() string { return s.path }

// Load reads the file. On failure it logs a diagnostic naming the expected
// file and listing the working directory.
func (s *Source) Load(ctx context.Context) (domain.Dataset, error) {
	ds, err := s.load(ctx)
	if err != nil {
		s.diagnose(err)
		return domain.Dataset{}, err
	}
	s.logger.Info("dataset loaded",
		log.String("path", s.path),
		log.Int("rows", ds.Len()),
		log.Strings("columns", ds.Columns()),
	)
	return ds, nil
}

func (s *Source) load(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, domain.LoadFailure(err, "load %s", s.path)
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Dataset{}, domain.LoadFailure(err, "file %s not found", s.path)
		}
		return domain.Dataset{}, domain.LoadFailure(err, "open %s", s.path)
	}
	defer f.Close()

	reader := stdcsv.NewReader(bufio.NewReader(f))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return domain.Dataset{}, domain.LoadFailure(nil, "%s is empty", s.path)
	}
	if err != nil {
		return domain.Dataset{}, domain.LoadFailure(err, "read header of %s", s.path)
	}
	header = normalizeHeader(header)

	index, missing, repeated := project(header, s.columns)
	if len(repeated) > 0 {
		return domain.Dataset{}, domain.LoadFailure(nil,
			"column list repeats %s", strings.Join(repeated, ", "))
	}
	if len(missing) > 0 {
		return domain.Dataset{}, domain.LoadFailure(nil,
			"%s is missing required columns %s", s.path, strings.Join(missing, ", "))
	}

	var rows [][]string
	for s.maxRows <= 0 || len(rows) < s.maxRows {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Dataset{}, domain.LoadFailure(err, "malformed row in %s", s.path)
		}
		row := make([]string, len(index))
		for i, src := range index {
			row[i] = strings.TrimSpace(rec[src])
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return domain.Dataset{}, domain.LoadFailure(nil, "%s has no data rows", s.path)
	}

	ds, err := domain.NewDataset(s.columns, rows)
	if err != nil {
		return domain.Dataset{}, domain.LoadFailure(err, "build table from %s", s.path)
	}
	if !anyMeasurement(ds) {
		return domain.Dataset{}, domain.LoadFailure(nil,
			"%s has no numeric %s values", s.path, domain.ColumnValue)
	}
	return ds, nil
}

// diagnose explains where the file was expected and what is actually in the
// working directory. Listing errors are logged at debug only.
func (s *Source) diagnose(cause error) {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		abs = s.path
	}
	s.logger.Error("could not load the CSV file",
		log.Err(cause),
		log.String("expected_file", filepath.Base(s.path)),
		log.String("expected_dir", filepath.Dir(abs)),
	)

	wd, err := os.Getwd()
	if err != nil {
		s.logger.Debug("cannot resolve working directory", log.Err(err))
		return
	}
	entries, err := os.ReadDir(wd)
	if err != nil {
		s.logger.Debug("cannot list working directory", log.String("dir", wd), log.Err(err))
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		names = append(names, name)
	}
	s.logger.Info("working directory contents", log.String("dir", wd), log.Strings("entries", names))
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// project maps each wanted column to its index in header. A column listed
// twice in wanted is reported in repeated.
func project(header, wanted []string) (index []int, missing, repeated []string) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	index = make([]int, 0, len(wanted))
	seen := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		if seen[w] {
			repeated = append(repeated, w)
			continue
		}
		seen[w] = true
		i, ok := pos[w]
		if !ok {
			missing = append(missing, w)
			continue
		}
		index = append(index, i)
	}
	return index, missing, repeated
}

func anyMeasurement(ds domain.Dataset) bool {
	values, err := ds.Floats(domain.ColumnValue)
	if err != nil {
		// no measurement column in the allow-list; nothing to coerce
		return true
	}
	for _, v := range values {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}
