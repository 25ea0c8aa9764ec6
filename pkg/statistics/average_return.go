package statistics

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/c9s/riskstat/pkg/types"
)

// AverageReturn is the cross-sectional mean daily return of one trading date.
type AverageReturn struct {
	Date               time.Time `json:"date"`
	AverageDailyReturn float64   `json:"averageDailyReturn"`
}

// AverageDailyReturns winsorizes each date's security returns into the [lower, upper]
// percentile range before averaging them, damping the influence of extreme movers.
func AverageDailyReturns(records []types.Record, lower, upper float64) []AverageReturn {
	byDate := make(map[time.Time][]float64)
	for _, s := range DailyReturns(records) {
		for i, d := range s.Dates {
			byDate[d] = append(byDate[d], s.Values[i])
		}
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sortDates(dates)

	out := make([]AverageReturn, len(dates))
	for i, d := range dates {
		out[i] = AverageReturn{
			Date:               d,
			AverageDailyReturn: stat.Mean(Winsorize(byDate[d], lower, upper), nil),
		}
	}
	return out
}
