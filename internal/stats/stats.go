// Package stats holds the small numeric summaries the charts are built from.
package stats

import (
	"math"
	"sort"
)

// Mean computes the average of a slice. NaN values are ignored.
func Mean(x []float64) float64 {
	n, sum := 0, 0.0
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Percentile returns the p-th percentile (0 <= p <= 100) using linear
// interpolation between closest ranks. x must be sorted ascending.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return sorted[lower]
	}
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Median returns the 50th percentile of a sorted slice.
func Median(sorted []float64) float64 {
	return Percentile(sorted, 50)
}

// WhiskerFactor scales the interquartile range to place the whisker fences.
const WhiskerFactor = 1.5

// Box is a box-and-whisker summary.
type Box struct {
	N      int
	Q1     float64
	Median float64
	Q3     float64

	// LowWhisker and HighWhisker are the most extreme observations inside
	// the 1.5×IQR fences.
	LowWhisker  float64
	HighWhisker float64

	// Outliers are the observations beyond the fences, ascending.
	Outliers []float64
}

// IQR returns the interquartile range.
func (b Box) IQR() float64 { return b.Q3 - b.Q1 }

// Min returns the lowest value drawn on the plot, outliers included.
func (b Box) Min() float64 {
	if len(b.Outliers) > 0 && b.Outliers[0] < b.LowWhisker {
		return b.Outliers[0]
	}
	return b.LowWhisker
}

// Max returns the highest value drawn on the plot, outliers included.
func (b Box) Max() float64 {
	if n := len(b.Outliers); n > 0 && b.Outliers[n-1] > b.HighWhisker {
		return b.Outliers[n-1]
	}
	return b.HighWhisker
}

// Summarize computes the box summary of x. NaN values are ignored and x is
// not modified. ok is false when x has no usable values.
func Summarize(x []float64) (box Box, ok bool) {
	sorted := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return Box{}, false
	}
	sort.Float64s(sorted)

	box = Box{
		N:      len(sorted),
		Q1:     Percentile(sorted, 25),
		Median: Median(sorted),
		Q3:     Percentile(sorted, 75),
	}
	lowFence := box.Q1 - WhiskerFactor*box.IQR()
	highFence := box.Q3 + WhiskerFactor*box.IQR()

	box.LowWhisker, box.HighWhisker = math.Inf(1), math.Inf(-1)
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if v < box.LowWhisker {
			box.LowWhisker = v
		}
		if v > box.HighWhisker {
			box.HighWhisker = v
		}
	}
	return box, true
}
