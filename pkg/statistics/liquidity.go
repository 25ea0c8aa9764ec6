package statistics

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/c9s/riskstat/pkg/types"
)

// ErrMissingTime is returned when a record has no trading date.
var ErrMissingTime = errors.New("record without trading date")

// DailyLiquidity is the market liquidity of one trading date.
// Volume, Amount and TurnoverRate are min-max scaled over the whole input.
type DailyLiquidity struct {
	Date            time.Time `json:"date"`
	Volume          float64   `json:"volume"`
	Amount          float64   `json:"amount"`
	TurnoverRate    float64   `json:"turnoverRate"`
	MarketLiquidity float64   `json:"marketLiquidity"`
}

// YearlyLiquidity averages the scaled daily indicators over a calendar year.
type YearlyLiquidity struct {
	Year                int     `json:"year"`
	AverageVolume       float64 `json:"averageVolume"`
	AverageAmount       float64 `json:"averageAmount"`
	AverageTurnoverRate float64 `json:"averageTurnoverRate"`
	MarketLiquidity     float64 `json:"marketLiquidity"`
}

// MinMaxScale maps xs onto [0, 1]; a constant series maps to zeros.
func MinMaxScale(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}

	lo, hi := floats.Min(xs), floats.Max(xs)
	if hi == lo {
		return out
	}

	for i, x := range xs {
		out[i] = (x - lo) / (hi - lo)
	}
	return out
}

// DailyLiquidityIndex aggregates volume and amount per date, approximates the turnover rate as the
// share of the period's total volume traded that day, scales the three indicators and averages them.
func DailyLiquidityIndex(records []types.Record) ([]DailyLiquidity, error) {
	volumes := make(map[time.Time]float64)
	amounts := make(map[time.Time]float64)
	var dates []time.Time
	for _, r := range records {
		if r.Time.IsZero() {
			return nil, ErrMissingTime
		}

		if _, ok := volumes[r.Time]; !ok {
			dates = append(dates, r.Time)
			volumes[r.Time] = 0
			amounts[r.Time] = 0
		}

		// missing values are skipped by the sums
		if finite(r.Volume) {
			volumes[r.Time] += r.Volume
		}
		if finite(r.Amount) {
			amounts[r.Time] += r.Amount
		}
	}
	sortDates(dates)

	volume := make([]float64, len(dates))
	amount := make([]float64, len(dates))
	for i, d := range dates {
		volume[i] = volumes[d]
		amount[i] = amounts[d]
	}

	turnover := make([]float64, len(dates))
	if total := floats.Sum(volume); total > 0 {
		for i, v := range volume {
			turnover[i] = v / total
		}
	}

	volume = MinMaxScale(volume)
	amount = MinMaxScale(amount)
	turnover = MinMaxScale(turnover)

	liquidity := make([]DailyLiquidity, len(dates))
	for i, d := range dates {
		liquidity[i] = DailyLiquidity{
			Date:            d,
			Volume:          volume[i],
			Amount:          amount[i],
			TurnoverRate:    turnover[i],
			MarketLiquidity: (volume[i] + amount[i] + turnover[i]) / 3,
		}
	}
	return liquidity, nil
}

// YearlyLiquidityIndex groups the daily index by calendar year.
func YearlyLiquidityIndex(records []types.Record) ([]YearlyLiquidity, error) {
	daily, err := DailyLiquidityIndex(records)
	if err != nil {
		return nil, err
	}

	var out []YearlyLiquidity
	for start := 0; start < len(daily); {
		year := daily[start].Date.Year()
		end := start
		for end < len(daily) && daily[end].Date.Year() == year {
			end++
		}

		var volume, amount, turnover []float64
		for _, d := range daily[start:end] {
			volume = append(volume, d.Volume)
			amount = append(amount, d.Amount)
			turnover = append(turnover, d.TurnoverRate)
		}

		y := YearlyLiquidity{
			Year:                year,
			AverageVolume:       stat.Mean(volume, nil),
			AverageAmount:       stat.Mean(amount, nil),
			AverageTurnoverRate: stat.Mean(turnover, nil),
		}
		y.MarketLiquidity = (y.AverageVolume + y.AverageAmount + y.AverageTurnoverRate) / 3
		out = append(out, y)
		start = end
	}
	return out, nil
}
