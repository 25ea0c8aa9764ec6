package portfolio

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/c9s/riskstat/pkg/statistics"
)

const (
	// SingularObjective is returned by the objective where the Sharpe ratio is undefined.
	SingularObjective = 1e10

	minVolatility = 1e-12
)

// Objective is the penalized negative Sharpe ratio of a weight vector:
//
//	-(w.mean - rf) / sqrt(w' cov w) + penaltyFactor * max(0, maxDrawdown(w) - threshold)
type Objective struct {
	returns *mat.Dense
	mean    []float64
	cov     *mat.SymDense

	riskFreeRate  float64
	threshold     float64
	penaltyFactor float64
}

func NewObjective(returns *mat.Dense, riskFreeRate, threshold, penaltyFactor float64) *Objective {
	_, n := returns.Dims()

	mean := make([]float64, n)
	for i := range mean {
		mean[i] = stat.Mean(mat.Col(nil, i, returns), nil)
	}

	cov := mat.NewSymDense(n, nil)
	stat.CovarianceMatrix(cov, returns, nil)

	return &Objective{
		returns:       returns,
		mean:          mean,
		cov:           cov,
		riskFreeRate:  riskFreeRate,
		threshold:     threshold,
		penaltyFactor: penaltyFactor,
	}
}

type evaluation struct {
	ret      float64
	variance float64
	vol      float64
	singular bool

	// cov * w
	sigmaW []float64

	returns []float64
	cum     []float64
	peaks   []int
	maxDD   float64
	maxAt   int
}

func (o *Objective) evaluate(w []float64) evaluation {
	var e evaluation
	wv := mat.NewVecDense(len(w), w)

	e.ret = floats.Dot(w, o.mean)

	var sw mat.VecDense
	sw.MulVec(o.cov, wv)
	e.sigmaW = sw.RawVector().Data
	e.variance = floats.Dot(w, e.sigmaW)
	e.vol = math.Sqrt(math.Max(e.variance, 0))
	e.singular = !(e.variance > 0) || e.vol <= minVolatility || math.IsInf(e.variance, 0)

	var pr mat.VecDense
	pr.MulVec(o.returns, wv)
	e.returns = pr.RawVector().Data
	e.cum = statistics.CumulativeReturns(e.returns)

	var dd []float64
	dd, e.peaks = statistics.DrawdownsWithPeaks(e.cum)
	e.maxDD, e.maxAt = statistics.MaxDrawdown(dd)
	return e
}

func (o *Objective) penalty(e evaluation) float64 {
	return o.penaltyFactor * math.Max(0, e.maxDD-o.threshold)
}

// Func evaluates the objective, never returning NaN or Inf.
func (o *Objective) Func(w []float64) float64 {
	e := o.evaluate(w)
	if e.singular {
		return SingularObjective
	}

	v := -(e.ret-o.riskFreeRate)/e.vol + o.penalty(e)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return SingularObjective
	}
	return v
}

// Penalty is the drawdown penalty contribution of the objective at w.
func (o *Objective) Penalty(w []float64) float64 {
	return o.penalty(o.evaluate(w))
}

// Grad writes the gradient of Func at w into grad. The drawdown term uses the sub-gradient
// at the step of the largest drawdown. The gradient is zero where the objective is singular.
func (o *Objective) Grad(grad, w []float64) {
	for i := range grad {
		grad[i] = 0
	}

	e := o.evaluate(w)
	if e.singular {
		return
	}

	excess := e.ret - o.riskFreeRate
	vol3 := e.vol * e.vol * e.vol
	for i := range grad {
		grad[i] = -o.mean[i]/e.vol + excess*e.sigmaW[i]/vol3
	}

	if o.penaltyFactor > 0 && e.maxDD > o.threshold && e.maxAt >= 0 {
		t := e.maxAt
		p := e.peaks[t]
		ct, cp := e.cum[t], e.cum[p]
		dct := o.cumulativeGrad(e, t)
		dcp := o.cumulativeGrad(e, p)

		// dd = 1 - cum_t / cum_p
		for i := range grad {
			grad[i] += o.penaltyFactor * (ct*dcp[i] - cp*dct[i]) / (cp * cp)
		}
	}

	for _, g := range grad {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			for i := range grad {
				grad[i] = 0
			}
			return
		}
	}
}

// cumulativeGrad is d cum_t / d w_i = (1 + cum_t) * sum(R_si / (1 + pr_s), s <= t).
func (o *Objective) cumulativeGrad(e evaluation, t int) []float64 {
	_, n := o.returns.Dims()
	g := make([]float64, n)
	for s := 0; s <= t; s++ {
		growth := 1 + e.returns[s]
		if growth == 0 {
			continue
		}
		for i := range g {
			g[i] += o.returns.At(s, i) / growth
		}
	}

	floats.Scale(1+e.cum[t], g)
	return g
}
