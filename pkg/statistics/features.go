package statistics

import (
	"sort"

	"github.com/c9s/riskstat/pkg/types"
)

// Feature holds the per-security statistics of one year used by the risk model.
type Feature struct {
	Code        string   `json:"code"`
	Year        int      `json:"year"`
	Alpha       Estimate `json:"alpha"`
	Beta        Estimate `json:"beta"`
	Sharpe      Estimate `json:"sharpe"`
	Volatility  Estimate `json:"volatility"`
	TotalReturn Estimate `json:"totalReturn"`
}

// Complete reports whether every statistic of the row is usable.
func (f Feature) Complete() bool {
	return f.Alpha.Valid() && f.Beta.Valid() && f.Sharpe.Valid() && f.Volatility.Valid() && f.TotalReturn.Valid()
}

// ComputeFeatures computes the feature row of every security in one year of records.
// rf is the per-period risk-free rate used by the Sharpe ratio. Rows are sorted by code.
func ComputeFeatures(year int, records []types.Record, rf float64) []Feature {
	market := MarketProxyReturns(records)
	groups := GroupByCode(records)

	features := make([]Feature, 0, len(groups))
	for code, g := range groups {
		returns := SimpleReturns(g)
		alpha, beta := AlphaBeta(returns, market)
		features = append(features, Feature{
			Code:        code,
			Year:        year,
			Alpha:       alpha,
			Beta:        beta,
			Sharpe:      Sharpe(returns.Values, rf),
			Volatility:  Volatility(returns.Values),
			TotalReturn: TotalReturn(ClosePrices(g)),
		})
	}

	sort.Slice(features, func(i, j int) bool {
		return features[i].Code < features[j].Code
	})
	return features
}
