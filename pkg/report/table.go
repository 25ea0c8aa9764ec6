package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/c9s/riskstat/pkg/portfolio"
	"github.com/c9s/riskstat/pkg/riskmodel"
	"github.com/c9s/riskstat/pkg/statistics"
	"github.com/c9s/riskstat/pkg/style"
)

// PrintWeightsTable prints the top largest weights of the result, all of them when top <= 0.
func PrintWeightsTable(w io.Writer, result *portfolio.Result, top int) {
	idx := make([]int, len(result.Weights))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return result.Weights[idx[a]] > result.Weights[idx[b]]
	})

	if top > 0 && top < len(idx) {
		idx = idx[:top]
	}

	t := style.NewTable(w, "Optimized Weights", table.Row{"#", "Stock", "Weight"})
	for rank, i := range idx {
		t.AppendRow(table.Row{rank + 1, result.Codes[i], fmt.Sprintf("%.6f", result.Weights[i])})
	}
	t.Render()
}

func estimateText(e statistics.Estimate) string {
	if v, ok := e.Float64(); ok {
		return fmt.Sprintf("%.6f", v)
	}
	return e.Status.String()
}

// PrintFeatureTable prints the per-security statistics of one year.
func PrintFeatureTable(w io.Writer, year int, features []statistics.Feature) {
	t := style.NewTable(w, fmt.Sprintf("Statistics %d", year), table.Row{"Stock", "Alpha", "Beta", "Sharpe", "Volatility", "Total Return"})
	for _, f := range features {
		t.AppendRow(table.Row{
			f.Code,
			estimateText(f.Alpha),
			estimateText(f.Beta),
			estimateText(f.Sharpe),
			estimateText(f.Volatility),
			estimateText(f.TotalReturn),
		})
	}
	t.Render()
}

func PrintYearlyLiquidityTable(w io.Writer, yearly []statistics.YearlyLiquidity) {
	t := style.NewTable(w, "Market Liquidity", table.Row{"Year", "Average Volume", "Average Amount", "Average Turnover Rate", "Market Liquidity"})
	for _, y := range yearly {
		t.AppendRow(table.Row{
			y.Year,
			fmt.Sprintf("%.2f", y.AverageVolume),
			fmt.Sprintf("%.2f", y.AverageAmount),
			fmt.Sprintf("%.4f", y.AverageTurnoverRate),
			fmt.Sprintf("%.4f", y.MarketLiquidity),
		})
	}
	t.Render()
}

func PrintModelTable(w io.Writer, model *riskmodel.Model) {
	t := style.NewTable(w, "Risk Model", table.Row{"Variable", "Coefficient"})
	for _, name := range riskmodel.Variables {
		t.AppendRow(table.Row{name, fmt.Sprintf("%.6f", model.Coefficients[name])})
	}
	t.AppendFooter(table.Row{"R2", fmt.Sprintf("%.6f", model.R2)})
	t.Render()
}
