package statistics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/c9s/riskstat/pkg/types"
)

var (
	ErrNoAnnualReturns = errors.New("no annual market returns")
	ErrNoYields        = errors.New("no treasury yields")
)

// MarketExpectation is the CAPM style expected market return.
//
//	E(R) = Rf + (Rm - Rf)
type MarketExpectation struct {
	Years          int     `json:"years"`
	MarketReturn   float64 `json:"marketReturn"`
	RiskFreeRate   float64 `json:"riskFreeRate"`
	RiskPremium    float64 `json:"riskPremium"`
	ExpectedReturn float64 `json:"expectedReturn"`
}

// AnnualProxy returns the mean constituent weight of one membership file,
// used as the proxy of that year's market return.
func AnnualProxy(constituents []types.Constituent) Estimate {
	var weights []float64
	for _, c := range constituents {
		if finite(c.Weight) {
			weights = append(weights, c.Weight)
		}
	}

	if len(weights) == 0 {
		return InsufficientData()
	}
	return OK(stat.Mean(weights, nil))
}

// GeometricMeanReturn computes (prod(1 + r))^(1/n) - 1.
func GeometricMeanReturn(returns []float64) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}

	acc := 1.0
	for _, r := range returns {
		acc *= 1 + r
	}
	return math.Pow(acc, 1/float64(len(returns))) - 1
}

// NewMarketExpectation combines the annual market return proxies with the treasury yields (in percent).
func NewMarketExpectation(annual []float64, yields []types.YieldPoint) (*MarketExpectation, error) {
	if len(annual) == 0 {
		return nil, ErrNoAnnualReturns
	}

	if len(yields) == 0 {
		return nil, ErrNoYields
	}

	values := make([]float64, len(yields))
	for i, y := range yields {
		values[i] = y.Yield
	}

	rm := GeometricMeanReturn(annual)
	rf := stat.Mean(values, nil) / 100
	rp := rm - rf
	return &MarketExpectation{
		Years:          len(annual),
		MarketReturn:   rm,
		RiskFreeRate:   rf,
		RiskPremium:    rp,
		ExpectedReturn: rf + rp,
	}, nil
}
