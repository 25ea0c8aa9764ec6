package portfolio

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/c9s/riskstat/pkg/statistics"
	"github.com/c9s/riskstat/pkg/types"
)

// Metrics describes a weight vector held over the whole return matrix.
type Metrics struct {
	ExpectedReturn    float64             `json:"expectedReturn"`
	Volatility        float64             `json:"volatility"`
	MaxDrawdown       float64             `json:"maxDrawdown"`
	Sharpe            statistics.Estimate `json:"sharpe"`
	Returns           []float64           `json:"returns"`
	CumulativeReturns []float64           `json:"cumulativeReturns"`
	Drawdown          []float64           `json:"drawdown"`
}

// Evaluate recomputes the portfolio statistics of w from the return matrix alone.
// rf is the per-period risk-free rate.
func Evaluate(r *types.ReturnMatrix, w []float64, rf float64) Metrics {
	t, n := r.Dims()
	var m Metrics
	if t == 0 || n == 0 || len(w) != n {
		m.Sharpe = statistics.InsufficientData()
		return m
	}

	mean := make([]float64, n)
	for i := range mean {
		mean[i] = stat.Mean(r.Column(i), nil)
	}
	m.ExpectedReturn = floats.Dot(w, mean)

	var variance float64
	if t > 1 {
		cov := mat.NewSymDense(n, nil)
		stat.CovarianceMatrix(cov, r.Data, nil)
		wv := mat.NewVecDense(n, w)
		variance = mat.Inner(wv, cov, wv)
	}
	m.Volatility = math.Sqrt(math.Max(variance, 0))

	switch {
	case t < 2:
		m.Sharpe = statistics.InsufficientData()
	case m.Volatility <= minVolatility:
		m.Sharpe = statistics.Singular()
	default:
		m.Sharpe = statistics.OK((m.ExpectedReturn - rf) / m.Volatility)
	}

	var pr mat.VecDense
	pr.MulVec(r.Data, mat.NewVecDense(n, w))
	m.Returns = append([]float64(nil), pr.RawVector().Data...)
	m.CumulativeReturns = statistics.CumulativeReturns(m.Returns)
	m.Drawdown = statistics.Drawdowns(m.CumulativeReturns)
	m.MaxDrawdown, _ = statistics.MaxDrawdown(m.Drawdown)
	return m
}
