package portfolio

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/c9s/riskstat/pkg/statistics"
	"github.com/c9s/riskstat/pkg/types"
)

var log = logrus.WithField("component", "portfolio")

// Result is a converged portfolio. Every metric is recomputed from Weights.
type Result struct {
	Codes   []string  `json:"codes"`
	Weights []float64 `json:"weights"`

	ExpectedReturn float64             `json:"expectedReturn"`
	Volatility     float64             `json:"volatility"`
	MaxDrawdown    float64             `json:"maxDrawdown"`
	Sharpe         statistics.Estimate `json:"sharpe"`

	Objective  float64         `json:"objective"`
	Iterations int             `json:"iterations"`
	Method     Method          `json:"method"`
	Status     optimize.Status `json:"status"`

	Dates             []time.Time `json:"dates"`
	CumulativeReturns []float64   `json:"cumulativeReturns"`
	Drawdown          []float64   `json:"drawdown"`
}

// Weight returns the weight of code, 0 for an unknown code.
func (r *Result) Weight(code string) float64 {
	for i, c := range r.Codes {
		if c == code {
			return r.Weights[i]
		}
	}
	return 0
}

// Optimize maximizes the drawdown-penalized Sharpe ratio of a long-only portfolio
// with capped weights, starting from w0. The search is local, the result depends on w0.
func Optimize(r *types.ReturnMatrix, w0 []float64, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = p.withDefaults()

	t, n := r.Dims()
	if n == 0 || t < 2 {
		return nil, errors.Wrapf(ErrInsufficientData, "%d dates x %d securities", t, n)
	}

	if len(w0) != n {
		return nil, errors.Wrapf(ErrMisaligned, "got %d initial weights for %d securities", len(w0), n)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	for i, w := range w0 {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.Wrapf(ErrNonFinite, "initial weight of %s", r.Codes[i])
		}
	}

	if !(p.WeightCap > 0) || float64(n)*p.WeightCap < 1 {
		return nil, errors.Wrapf(ErrInfeasible, "%d securities with weight cap %v cannot sum to 1", n, p.WeightCap)
	}

	obj := NewObjective(r.Data, p.RiskFreeRate, p.MaxDrawdown, p.PenaltyFactor)

	log.Infof("optimizing %d securities over %d dates with %s, weight cap %v", n, t, p.Method, p.WeightCap)

	var sol *solution
	var err error
	switch p.Method {
	case MethodNelderMead:
		sol, err = minimizeNelderMead(obj, w0, p.WeightCap, p.MaxIterations, p.Tolerance)
	default:
		sol, err = minimizeProjectedGradient(obj, w0, p.WeightCap, p.MaxIterations, p.Tolerance)
	}
	if err != nil {
		return nil, err
	}

	log.Infof("%s converged after %d iterations: %s, objective=%f", p.Method, sol.Iterations, sol.Status, sol.F)

	m := Evaluate(r, sol.X, p.RiskFreeRate)
	return &Result{
		Codes:             append([]string(nil), r.Codes...),
		Weights:           sol.X,
		ExpectedReturn:    m.ExpectedReturn,
		Volatility:        m.Volatility,
		MaxDrawdown:       m.MaxDrawdown,
		Sharpe:            m.Sharpe,
		Objective:         sol.F,
		Iterations:        sol.Iterations,
		Method:            p.Method,
		Status:            sol.Status,
		Dates:             append([]time.Time(nil), r.Dates...),
		CumulativeReturns: m.CumulativeReturns,
		Drawdown:          m.Drawdown,
	}, nil
}

// AlignWeights orders the constituent weights by codes and normalizes them to sum to 1.
func AlignWeights(codes []string, constituents []types.Constituent) ([]float64, error) {
	byCode := make(map[string]float64, len(constituents))
	for _, c := range constituents {
		byCode[c.Code] = c.Weight
	}

	w := make([]float64, len(codes))
	for i, code := range codes {
		weight, ok := byCode[code]
		if !ok {
			return nil, errors.Wrapf(ErrMisaligned, "no weight for %s", code)
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
			return nil, errors.Wrapf(ErrMisaligned, "invalid weight %v for %s", weight, code)
		}
		w[i] = weight
	}

	total := floats.Sum(w)
	if !(total > 0) {
		return nil, errors.Wrapf(ErrMisaligned, "weights sum to %v", total)
	}

	floats.Scale(1/total, w)
	return w, nil
}
