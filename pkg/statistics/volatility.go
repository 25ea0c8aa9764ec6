package statistics

import "gonum.org/v1/gonum/stat"

// Volatility is the sample standard deviation of the returns.
func Volatility(returns []float64) Estimate {
	if len(returns) < 2 {
		return InsufficientData()
	}
	return OK(stat.StdDev(returns, nil))
}
