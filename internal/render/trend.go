package render

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/bft-labs/mortplot/internal/aggregate"
)

// BuildTrendChart draws the yearly mean as a line with point markers.
func BuildTrendChart(points []aggregate.YearMean) (chart.Chart, error) {
	if len(points) == 0 {
		return chart.Chart{}, errors.New("trend chart: no points")
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	ticks := make([]chart.Tick, 0, len(points)+2)
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	first, last := points[0].Year, points[len(points)-1].Year
	ticks = append(ticks, chart.Tick{Value: float64(first - 1), Label: ""})
	for i, p := range points {
		xs[i], ys[i] = float64(p.Year), p.Mean
		ticks = append(ticks, chart.Tick{Value: float64(p.Year), Label: strconv.Itoa(p.Year)})
		minY = math.Min(minY, p.Mean)
		maxY = math.Max(maxY, p.Mean)
	}
	ticks = append(ticks, chart.Tick{Value: float64(last + 1), Label: ""})

	return chart.Chart{
		Title:      "Average Mortality Rate by Year",
		Background: background(""),
		XAxis: chart.XAxis{
			Name:  "Year",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: float64(first - 1), Max: float64(last + 1)},
		},
		YAxis: valueAxis("Mortality rate per 100,000", minY, maxY),
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Mean rate",
				Style: chart.Style{
					StrokeColor: colorTrend,
					StrokeWidth: 2,
					DotColor:    colorTrend,
					DotWidth:    4,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}, nil
}

// TrendChart renders BuildTrendChart as PNG.
func TrendChart(points []aggregate.YearMean, opts Options) ([]byte, error) {
	ch, err := BuildTrendChart(points)
	if err != nil {
		return nil, err
	}
	ch.Background = background(opts.Caption)
	return encode(ch, opts)
}
