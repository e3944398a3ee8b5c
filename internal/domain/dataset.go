package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// Dataset is an immutable table of mortality records.
// The zero value is an empty table with no columns.
type Dataset struct {
	frame dataframe.DataFrame
	empty bool
}

// NewDataset builds a Dataset from a header and string rows. Year is coerced
// to int and Data_Value to float; cells that do not parse become missing.
func NewDataset(header []string, rows [][]string) (Dataset, error) {
	if len(header) == 0 {
		return Dataset{}, errors.New("dataset: no columns")
	}
	if len(rows) == 0 {
		return emptyDataset(header), nil
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	records = append(records, rows...)

	frame := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(columnTypes),
		dataframe.NaNValues(missingMarkers),
	)
	if frame.Err != nil {
		return Dataset{}, errors.Wrap(frame.Err, "dataset")
	}
	return Dataset{frame: frame}, nil
}

// emptyDataset keeps the column names of a table without rows. gota refuses
// to build a frame from a header alone, so the columns are typed series of
// length zero.
func emptyDataset(header []string) Dataset {
	cols := make([]series.Series, 0, len(header))
	for _, name := range header {
		t, ok := columnTypes[name]
		if !ok {
			t = series.String
		}
		cols = append(cols, series.New([]string{}, t, name))
	}
	return Dataset{frame: dataframe.New(cols...), empty: true}
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	if d.empty || d.frame.Ncol() == 0 {
		return 0
	}
	return d.frame.Nrow()
}

// Columns returns the column names in table order.
func (d Dataset) Columns() []string {
	if d.frame.Ncol() == 0 {
		return nil
	}
	return d.frame.Names()
}

// Has reports whether the table has a column with the given name.
func (d Dataset) Has(column string) bool {
	for _, name := range d.Columns() {
		if name == column {
			return true
		}
	}
	return false
}

// Floats returns the column as float64 values; missing cells are NaN.
func (d Dataset) Floats(column string) ([]float64, error) {
	col, err := d.column(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, col.Len())
	for i := range out {
		el := col.Elem(i)
		if el.IsNA() {
			out[i] = math.NaN()
			continue
		}
		out[i] = el.Float()
	}
	return out, nil
}

// Ints returns the column as ints together with a validity mask; ok[i] is
// false when the cell is missing or not a finite number. Fractional values
// are truncated toward zero.
func (d Dataset) Ints(column string) (values []int, ok []bool, err error) {
	col, err := d.column(column)
	if err != nil {
		return nil, nil, err
	}
	values = make([]int, col.Len())
	ok = make([]bool, col.Len())
	for i := range values {
		el := col.Elem(i)
		if el.IsNA() {
			continue
		}
		values[i], ok[i] = parseInt(el.String())
	}
	return values, ok, nil
}

func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// Strings returns the column as labels together with a validity mask.
func (d Dataset) Strings(column string) (values []string, ok []bool, err error) {
	col, err := d.column(column)
	if err != nil {
		return nil, nil, err
	}
	values = make([]string, col.Len())
	ok = make([]bool, col.Len())
	for i := range values {
		el := col.Elem(i)
		if el.IsNA() {
			continue
		}
		values[i], ok[i] = el.String(), true
	}
	return values, ok, nil
}

// Records returns the table as string rows, header first.
func (d Dataset) Records() [][]string {
	if d.frame.Ncol() == 0 {
		return nil
	}
	if d.Len() == 0 {
		return [][]string{d.Columns()}
	}
	return d.frame.Records()
}

func (d Dataset) column(name string) (series.Series, error) {
	if !d.Has(name) {
		return series.Series{}, errors.Errorf("dataset: no column %q", name)
	}
	return d.frame.Col(name), nil
}
