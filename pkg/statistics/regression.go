package statistics

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// AlphaBeta regresses the security returns on the market returns over the dates both series have.
// Alpha is the intercept and Beta the slope of the ordinary least squares fit.
func AlphaBeta(security, market Series) (alpha, beta Estimate) {
	marketByDate := make(map[time.Time]float64, market.Len())
	for i, d := range market.Dates {
		marketByDate[d] = market.Values[i]
	}

	var x, y []float64
	for i, d := range security.Dates {
		m, ok := marketByDate[d]
		if !ok || !finite(m) || !finite(security.Values[i]) {
			continue
		}
		x = append(x, m)
		y = append(y, security.Values[i])
	}

	if len(x) < 2 {
		return InsufficientData(), InsufficientData()
	}

	if stat.Variance(x, nil) == 0 {
		return Singular(), Singular()
	}

	a, b := stat.LinearRegression(x, y, nil, false)
	return OK(a), OK(b)
}
