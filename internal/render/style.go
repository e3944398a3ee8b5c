package render

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

// Options controls the canvas of a rendered chart.
type Options struct {
	Width  int
	Height int

	// Caption is stamped in the bottom-left corner when non-empty.
	Caption string
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

var (
	colorTrend   = drawing.ColorFromHex("4F46E5")
	colorBar     = drawing.ColorFromHex("10B981")
	colorBox     = drawing.ColorFromHex("F59E0B")
	colorOutline = drawing.ColorFromHex("374151")
	colorOutlier = drawing.ColorFromHex("EF4444")
)

// background leaves room for the caption under the x axis.
func background(caption string) chart.Style {
	bottom := 20
	if caption != "" {
		bottom += 18
	}
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: bottom}}
}

// categoryAxis places one tick per label at x = 1..n. Blank ticks at 0 and
// n+1 keep the range non-degenerate and the outer categories off the edges.
func categoryAxis(name string, labels []string) chart.XAxis {
	ticks := make([]chart.Tick, 0, len(labels)+2)
	ticks = append(ticks, chart.Tick{Value: 0, Label: ""})
	for i, l := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: l})
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(labels) + 1), Label: ""})
	return chart.XAxis{
		Name:  name,
		Ticks: ticks,
		Range: &chart.ContinuousRange{Min: 0, Max: float64(len(labels) + 1)},
	}
}

// valueAxis builds a y axis with nice bounds around [min, max].
func valueAxis(name string, min, max float64) chart.YAxis {
	lo, hi := niceAxisBounds(min, max)
	ticks := niceTicks(lo, hi, 6)
	if len(ticks) >= 2 && ticks[len(ticks)-1].Value >= hi {
		lo, hi = ticks[0].Value, ticks[len(ticks)-1].Value
	}
	return chart.YAxis{
		Name:  name,
		Range: &chart.ContinuousRange{Min: lo, Max: hi},
		Ticks: ticks,
	}
}

// niceAxisBounds expands [min,max] by a small margin and rounds to nice numbers.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return 0, 1
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	a := min - pad
	b := max + pad
	if min >= 0 && a < 0 {
		a = 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates up to n tick marks between [min, max] using steps of
// 1, 2, 2.5, 5 or 10 times a power of ten.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	ticks := []chart.Tick{}
	for v := start; v <= end+bestStep/2; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

func formatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case v == 0:
		return "0"
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
