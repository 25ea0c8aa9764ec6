package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"

	"github.com/c9s/riskstat/pkg/portfolio"
	"github.com/c9s/riskstat/pkg/statistics"
)

// ErrNotEnoughPoints is returned when a series has fewer than two points to draw.
var ErrNotEnoughPoints = errors.New("a chart series needs at least two points")

type Canvas struct {
	chart.Chart
}

func floatFormatter(format string) chart.ValueFormatter {
	return func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf(format, vf)
		}
		return ""
	}
}

func newCanvas(title, xName, yName string, xFormatter chart.ValueFormatter) *Canvas {
	out := &Canvas{
		Chart: chart.Chart{
			Title: title,
			XAxis: chart.XAxis{
				Name:           xName,
				ValueFormatter: xFormatter,
			},
			YAxis: chart.YAxis{
				Name:           yName,
				ValueFormatter: floatFormatter("%.4f"),
			},
		},
	}
	out.Chart.Elements = []chart.Renderable{
		chart.LegendLeft(&out.Chart),
	}
	return out
}

// NewDateCanvas creates a line chart with a date x axis.
func NewDateCanvas(title, yName string) *Canvas {
	return newCanvas(title, "Date", yName, chart.TimeDateValueFormatter)
}

// NewYearCanvas creates a line chart with a calendar year x axis.
func NewYearCanvas(title, yName string) *Canvas {
	return newCanvas(title, "Year", yName, floatFormatter("%.0f"))
}

func (canvas *Canvas) PlotDates(tag string, dates []time.Time, values []float64) {
	canvas.Series = append(canvas.Series, chart.TimeSeries{
		Name:    tag,
		XValues: dates,
		YValues: values,
	})
}

func (canvas *Canvas) PlotRaw(tag string, xs, ys []float64) {
	canvas.Series = append(canvas.Series, chart.ContinuousSeries{
		Name:    tag,
		XValues: xs,
		YValues: ys,
	})
}

// seriesValues returns the y values of the plotted series.
func (canvas *Canvas) seriesValues() [][]float64 {
	var values [][]float64
	for _, s := range canvas.Series {
		switch series := s.(type) {
		case chart.TimeSeries:
			values = append(values, series.YValues)
		case chart.ContinuousSeries:
			values = append(values, series.YValues)
		}
	}
	return values
}

// RenderPNG draws the chart. A flat y range, e.g. a drawdown that stays at zero,
// is widened around its value since the renderer cannot scale a zero delta.
func (canvas *Canvas) RenderPNG(w io.Writer) error {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ys := range canvas.seriesValues() {
		if len(ys) < 2 {
			return ErrNotEnoughPoints
		}

		lo = math.Min(lo, floats.Min(ys))
		hi = math.Max(hi, floats.Max(ys))
	}

	if lo == hi && canvas.YAxis.Range == nil {
		canvas.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	return canvas.Render(chart.PNG, w)
}

// Save renders the chart as a PNG file.
func (canvas *Canvas) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create chart file %s", path)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := canvas.RenderPNG(f); err != nil {
		return errors.Wrapf(err, "cannot render chart %s", canvas.Title)
	}
	return nil
}

func DrawCumulativeReturns(result *portfolio.Result) *Canvas {
	canvas := NewDateCanvas("Cumulative Returns of Optimized Portfolio", "Cumulative Return")
	canvas.PlotDates("Cumulative Returns", result.Dates, result.CumulativeReturns)
	return canvas
}

func DrawDrawdown(result *portfolio.Result) *Canvas {
	canvas := NewDateCanvas("Drawdown of Optimized Portfolio", "Drawdown")
	canvas.PlotDates("Drawdown", result.Dates, result.Drawdown)
	return canvas
}

// DrawYearlyLiquidity plots the four scaled liquidity indicators per year.
func DrawYearlyLiquidity(yearly []statistics.YearlyLiquidity) *Canvas {
	years := make([]float64, len(yearly))
	var volume, amount, turnover, liquidity []float64
	for i, y := range yearly {
		years[i] = float64(y.Year)
		volume = append(volume, y.AverageVolume)
		amount = append(amount, y.AverageAmount)
		turnover = append(turnover, y.AverageTurnoverRate)
		liquidity = append(liquidity, y.MarketLiquidity)
	}

	title := "Market Liquidity"
	if len(yearly) > 0 {
		title = fmt.Sprintf("Market Liquidity %d-%d", yearly[0].Year, yearly[len(yearly)-1].Year)
	}

	canvas := NewYearCanvas(title, "Liquidity (scaled)")
	canvas.PlotRaw("Average Volume", years, volume)
	canvas.PlotRaw("Average Amount", years, amount)
	canvas.PlotRaw("Average Turnover Rate", years, turnover)
	canvas.PlotRaw("Market Liquidity", years, liquidity)
	return canvas
}
