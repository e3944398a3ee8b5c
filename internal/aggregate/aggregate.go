// Package aggregate groups a cleaned Dataset into the series each chart draws.
//
// Every function returns a domain ChartSkip error when the columns it needs
// are absent or when grouping leaves nothing to draw, and reports how many
// rows it had to leave out because a key or measurement was missing.
package aggregate

import (
	"math"

	"github.com/pkg/errors"
	btr "github.com/tidwall/btree"

	"github.com/bft-labs/mortplot/internal/domain"
	"github.com/bft-labs/mortplot/internal/stats"
)

// YearMean is one point of the trend chart.
type YearMean struct {
	Year int
	Mean float64
	N    int
}

// CategoryCount is one bar of the distribution chart.
type CategoryCount struct {
	Label string
	Count int
}

// CategorySpread is one box of the spread chart.
type CategorySpread struct {
	Label string
	Box   stats.Box
}

type yearBucket struct {
	year   int
	values []float64
}

type labelBucket struct {
	label string
	count int
}

func byYear(a, b interface{}) bool  { return a.(*yearBucket).year < b.(*yearBucket).year }
func byLabel(a, b interface{}) bool { return a.(*labelBucket).label < b.(*labelBucket).label }

// MeanByYear averages the measurement per year, years ascending. Rows with
// a missing year or measurement are left out and counted in dropped.
func MeanByYear(ds domain.Dataset) (points []YearMean, dropped int, err error) {
	if err := requireColumns(ds, domain.ColumnYear, domain.ColumnValue); err != nil {
		return nil, 0, err
	}
	years, okYear, err := ds.Ints(domain.ColumnYear)
	if err != nil {
		return nil, 0, errors.Wrap(err, "mean by year")
	}
	values, err := ds.Floats(domain.ColumnValue)
	if err != nil {
		return nil, 0, errors.Wrap(err, "mean by year")
	}

	tree := btr.New(byYear)
	for i, year := range years {
		if !okYear[i] || math.IsNaN(values[i]) {
			dropped++
			continue
		}
		b, _ := tree.Get(&yearBucket{year: year}).(*yearBucket)
		if b == nil {
			b = &yearBucket{year: year}
			tree.Set(b)
		}
		b.values = append(b.values, values[i])
	}
	if tree.Len() == 0 {
		return nil, dropped, domain.ChartSkip("no rows with both %s and %s", domain.ColumnYear, domain.ColumnValue)
	}

	out := make([]YearMean, 0, tree.Len())
	tree.Ascend(nil, func(item interface{}) bool {
		b := item.(*yearBucket)
		out = append(out, YearMean{Year: b.year, Mean: stats.Mean(b.values), N: len(b.values)})
		return true
	})
	return out, dropped, nil
}

// CountBy counts rows per distinct label of column, labels ascending.
// Rows with a missing label are not counted and are reported in dropped.
func CountBy(ds domain.Dataset, column string) (counts []CategoryCount, dropped int, err error) {
	if err := requireColumns(ds, column); err != nil {
		return nil, 0, err
	}
	labels, ok, err := ds.Strings(column)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "count by %s", column)
	}

	tree := btr.New(byLabel)
	for i, label := range labels {
		if !ok[i] {
			dropped++
			continue
		}
		b, _ := tree.Get(&labelBucket{label: label}).(*labelBucket)
		if b == nil {
			b = &labelBucket{label: label}
			tree.Set(b)
		}
		b.count++
	}
	if tree.Len() == 0 {
		return nil, dropped, domain.ChartSkip("no %s labels", column)
	}

	out := make([]CategoryCount, 0, tree.Len())
	tree.Ascend(nil, func(item interface{}) bool {
		b := item.(*labelBucket)
		out = append(out, CategoryCount{Label: b.label, Count: b.count})
		return true
	})
	return out, dropped, nil
}

// SpreadBy summarizes the measurement per label of column, in first-seen
// order. Labels with fewer than minSamples measurements are excluded; rows
// with a missing label or measurement are reported in dropped.
func SpreadBy(ds domain.Dataset, column string, minSamples int) (spread []CategorySpread, dropped int, err error) {
	if err := requireColumns(ds, column, domain.ColumnValue); err != nil {
		return nil, 0, err
	}
	labels, ok, err := ds.Strings(column)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "spread by %s", column)
	}
	values, err := ds.Floats(domain.ColumnValue)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "spread by %s", column)
	}

	grouped := make(map[string][]float64)
	order := make([]string, 0)
	for i, label := range labels {
		if !ok[i] || math.IsNaN(values[i]) {
			dropped++
			continue
		}
		if _, exists := grouped[label]; !exists {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], values[i])
	}

	out := make([]CategorySpread, 0, len(order))
	for _, label := range order {
		if len(grouped[label]) < minSamples {
			continue
		}
		box, ok := stats.Summarize(grouped[label])
		if !ok {
			continue
		}
		out = append(out, CategorySpread{Label: label, Box: box})
	}
	if len(out) == 0 {
		return nil, dropped, domain.ChartSkip("no %s has at least %d samples", column, minSamples)
	}
	return out, dropped, nil
}

func requireColumns(ds domain.Dataset, columns ...string) error {
	for _, c := range columns {
		if !ds.Has(c) {
			return domain.ChartSkip("no %s column", c)
		}
	}
	return nil
}
