package render

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/bft-labs/mortplot/internal/aggregate"
	"github.com/bft-labs/mortplot/internal/stats"
)

const (
	boxFill     = 0.5
	capFill     = 0.25
	outlierSize = 3.0
)

// boxSeries draws one box-and-whisker glyph per summary at x = 1..n.
type boxSeries struct {
	Name         string
	Style        chart.Style
	OutlierStyle chart.Style
	Boxes        []stats.Box
}

func (bs boxSeries) GetName() string           { return bs.Name }
func (bs boxSeries) GetStyle() chart.Style     { return bs.Style }
func (bs boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (bs boxSeries) Len() int                  { return len(bs.Boxes) }

// GetBoundedValues spans the outliers as well as the whiskers.
func (bs boxSeries) GetBoundedValues(i int) (x, y1, y2 float64) {
	b := bs.Boxes[i]
	return float64(i + 1), b.Min(), b.Max()
}

func (bs boxSeries) Validate() error {
	if len(bs.Boxes) == 0 {
		return errors.Errorf("box series %q: no boxes", bs.Name)
	}
	return nil
}

func (bs boxSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := bs.Style.InheritFrom(defaults)
	outlier := bs.OutlierStyle.InheritFrom(style)
	slot := slotWidth(xrange)
	half := int(slot * boxFill / 2)
	capHalf := int(slot * capFill / 2)

	ty := func(v float64) int { return canvasBox.Bottom - yrange.Translate(v) }

	for i, b := range bs.Boxes {
		x := canvasBox.Left + xrange.Translate(float64(i+1))
		q1, med, q3 := ty(b.Q1), ty(b.Median), ty(b.Q3)
		lo, hi := ty(b.LowWhisker), ty(b.HighWhisker)

		r.SetFillColor(style.FillColor)
		r.SetStrokeColor(style.StrokeColor)
		r.SetStrokeWidth(style.StrokeWidth)
		r.MoveTo(x-half, q3)
		r.LineTo(x+half, q3)
		r.LineTo(x+half, q1)
		r.LineTo(x-half, q1)
		r.LineTo(x-half, q3)
		r.Close()
		r.FillStroke()

		// whiskers and caps
		r.SetStrokeColor(style.StrokeColor)
		r.SetStrokeWidth(style.StrokeWidth)
		r.MoveTo(x, q3)
		r.LineTo(x, hi)
		r.Stroke()
		r.MoveTo(x, q1)
		r.LineTo(x, lo)
		r.Stroke()
		r.MoveTo(x-capHalf, hi)
		r.LineTo(x+capHalf, hi)
		r.Stroke()
		r.MoveTo(x-capHalf, lo)
		r.LineTo(x+capHalf, lo)
		r.Stroke()

		r.SetStrokeWidth(style.StrokeWidth * 2)
		r.MoveTo(x-half, med)
		r.LineTo(x+half, med)
		r.Stroke()

		r.SetFillColor(outlier.FillColor)
		r.SetStrokeColor(outlier.StrokeColor)
		r.SetStrokeWidth(outlier.StrokeWidth)
		for _, v := range b.Outliers {
			r.Circle(outlierSize, x, ty(v))
			r.FillStroke()
		}
	}
}

// BuildSpreadChart draws one box per category in the given order. Labels
// carry the sample count.
func BuildSpreadChart(title, axis string, spread []aggregate.CategorySpread) (chart.Chart, error) {
	if len(spread) == 0 {
		return chart.Chart{}, errors.Errorf("%s: no categories", title)
	}

	labels := make([]string, len(spread))
	boxes := make([]stats.Box, len(spread))
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for i, s := range spread {
		labels[i] = fmt.Sprintf("%s (n=%d)", s.Label, s.Box.N)
		boxes[i] = s.Box
		minY = math.Min(minY, s.Box.Min())
		maxY = math.Max(maxY, s.Box.Max())
	}

	return chart.Chart{
		Title:      title,
		Background: background(""),
		XAxis:      categoryAxis(axis, labels),
		YAxis:      valueAxis("Mortality rate per 100,000", minY, maxY),
		Series: []chart.Series{
			boxSeries{
				Name: "Spread",
				Style: chart.Style{
					FillColor:   colorBox.WithAlpha(160),
					StrokeColor: colorOutline,
					StrokeWidth: 1.5,
				},
				OutlierStyle: chart.Style{
					FillColor:   colorOutlier,
					StrokeColor: colorOutlier,
					StrokeWidth: 1,
				},
				Boxes: boxes,
			},
		},
	}, nil
}

// SpreadChart renders BuildSpreadChart as PNG.
func SpreadChart(title, axis string, spread []aggregate.CategorySpread, opts Options) ([]byte, error) {
	ch, err := BuildSpreadChart(title, axis, spread)
	if err != nil {
		return nil, err
	}
	ch.Background = background(opts.Caption)
	return encode(ch, opts)
}
