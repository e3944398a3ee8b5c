package render

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/bft-labs/mortplot/internal/aggregate"
)

// barFill is the share of a category slot covered by its bar.
const barFill = 0.6

// barSeries draws one bar per value at x = 1..n with its label above it.
type barSeries struct {
	Name   string
	Style  chart.Style
	Values []float64
	Labels []string
}

func (bs barSeries) GetName() string                { return bs.Name }
func (bs barSeries) GetStyle() chart.Style          { return bs.Style }
func (bs barSeries) GetYAxis() chart.YAxisType      { return chart.YAxisPrimary }
func (bs barSeries) Len() int                       { return len(bs.Values) }
func (bs barSeries) GetValues(i int) (x, y float64) { return float64(i + 1), bs.Values[i] }

// GetBoundedValues includes the zero baseline in the range.
func (bs barSeries) GetBoundedValues(i int) (x, y1, y2 float64) {
	return float64(i + 1), bs.Values[i], 0
}

func (bs barSeries) Validate() error {
	if len(bs.Values) == 0 {
		return errors.Errorf("bar series %q: no values", bs.Name)
	}
	if len(bs.Labels) != len(bs.Values) {
		return errors.Errorf("bar series %q: %d labels for %d values", bs.Name, len(bs.Labels), len(bs.Values))
	}
	return nil
}

func (bs barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := bs.Style.InheritFrom(defaults)
	half := slotWidth(xrange) * barFill / 2
	base := canvasBox.Bottom - yrange.Translate(math.Max(0, yrange.GetMin()))

	for i, v := range bs.Values {
		x := canvasBox.Left + xrange.Translate(float64(i+1))
		y := canvasBox.Bottom - yrange.Translate(v)
		left, right := x-int(half), x+int(half)

		r.SetFillColor(style.FillColor)
		r.SetStrokeColor(style.StrokeColor)
		r.SetStrokeWidth(style.StrokeWidth)
		r.MoveTo(left, y)
		r.LineTo(right, y)
		r.LineTo(right, base)
		r.LineTo(left, base)
		r.LineTo(left, y)
		r.Close()
		r.FillStroke()

		drawCenteredText(r, style, bs.Labels[i], x, y-6)
	}
}

// BuildCountChart draws one bar per category with its count above it.
func BuildCountChart(title, axis string, counts []aggregate.CategoryCount) (chart.Chart, error) {
	if len(counts) == 0 {
		return chart.Chart{}, errors.Errorf("%s: no categories", title)
	}

	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	texts := make([]string, len(counts))
	maxY := 0.0
	for i, c := range counts {
		labels[i] = c.Label
		values[i] = float64(c.Count)
		texts[i] = strconv.Itoa(c.Count)
		maxY = math.Max(maxY, values[i])
	}

	return chart.Chart{
		Title:      title,
		Background: background(""),
		XAxis:      categoryAxis(axis, labels),
		YAxis:      valueAxis("Number of records", 0, maxY*1.1), // headroom for the count labels
		Series: []chart.Series{
			barSeries{
				Name: "Records",
				Style: chart.Style{
					FillColor:   colorBar,
					StrokeColor: colorOutline,
					StrokeWidth: 1,
					FontColor:   colorOutline,
					FontSize:    11,
				},
				Values: values,
				Labels: texts,
			},
		},
	}, nil
}

// CountChart renders BuildCountChart as PNG.
func CountChart(title, axis string, counts []aggregate.CategoryCount, opts Options) ([]byte, error) {
	ch, err := BuildCountChart(title, axis, counts)
	if err != nil {
		return nil, err
	}
	ch.Background = background(opts.Caption)
	return encode(ch, opts)
}

// slotWidth is the pixel distance between two adjacent categories.
func slotWidth(xrange chart.Range) float64 {
	return math.Abs(float64(xrange.Translate(2) - xrange.Translate(1)))
}

// drawCenteredText writes text centered on x with its baseline at y.
func drawCenteredText(r chart.Renderer, style chart.Style, text string, x, y int) {
	if text == "" {
		return
	}
	f := style.Font
	if f == nil {
		var err error
		if f, err = chart.GetDefaultFont(); err != nil {
			return
		}
	}
	size := style.FontSize
	if size <= 0 {
		size = chart.DefaultFontSize
	}
	r.SetFont(f)
	r.SetFontSize(size)
	r.SetFontColor(style.FontColor)
	tb := r.MeasureText(text)
	r.Text(text, x-tb.Width()/2, y)
}
