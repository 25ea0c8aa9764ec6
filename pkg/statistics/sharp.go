package statistics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// DailyToAnnualFactor is the number of trading days used to scale daily observations to annual.
	DailyToAnnualFactor = 252

	// DefaultAnnualRiskFreeRate is the annual risk-free rate assumed by the per-security Sharpe ratio.
	DefaultAnnualRiskFreeRate = 0.02
)

// PeriodicRiskFreeRate converts an annual rate into a compounded per-period rate.
func PeriodicRiskFreeRate(annual float64, periods int) float64 {
	if periods <= 0 {
		periods = DailyToAnnualFactor
	}
	return math.Pow(1+annual, 1/float64(periods)) - 1
}

// Sharpe calculates the (not annualized) sharpe ratio of periodic returns.
//
// @param rf (float): risk-free rate of the same period as the returns
func Sharpe(returns []float64, rf float64) Estimate {
	if len(returns) < 2 {
		return InsufficientData()
	}

	mean, sd := stat.MeanStdDev(returns, nil)
	if sd == 0 || math.IsNaN(sd) {
		return Singular()
	}

	return OK((mean - rf) / sd)
}
