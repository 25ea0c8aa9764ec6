package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/c9s/riskstat/pkg/optimizer"
	"github.com/c9s/riskstat/pkg/portfolio"
	"github.com/c9s/riskstat/pkg/statistics"
	"github.com/c9s/riskstat/pkg/style"
)

// PrintPortfolioSummary prints the converged portfolio metrics.
func PrintPortfolioSummary(w io.Writer, year int, result *portfolio.Result) {
	title := color.New(color.FgGreen)
	title.Fprintf(w, "%d OPTIMIZED PORTFOLIO REPORT\n", year)
	title.Fprintln(w, "===============================================")
	title.Fprintf(w, "METHOD: %s (%s after %d iterations)\n", result.Method, result.Status, result.Iterations)

	style.SignColor(result.ExpectedReturn).Fprintf(w, "EXPECTED DAILY RETURN: %s\n", style.PercentString(result.ExpectedReturn, 4))
	title.Fprintf(w, "DAILY VOLATILITY: %s\n", style.PercentString(result.Volatility, 4))
	style.SignColor(-result.MaxDrawdown).Fprintf(w, "MAX DRAWDOWN: %s\n", style.PercentString(result.MaxDrawdown, 2))

	if v, ok := result.Sharpe.Float64(); ok {
		style.SignColor(v).Fprintf(w, "SHARPE RATIO: %.4f\n", v)
	} else {
		style.NegativeColor.Fprintf(w, "SHARPE RATIO: %s\n", result.Sharpe.Status)
	}

	var held int
	for _, x := range result.Weights {
		if x > 1e-6 {
			held++
		}
	}
	title.Fprintf(w, "HOLDINGS: %d of %d securities\n", held, len(result.Weights))
}

// PrintMarketExpectation prints the expected market return decomposition.
func PrintMarketExpectation(w io.Writer, e *statistics.MarketExpectation) {
	title := color.New(color.FgGreen)
	title.Fprintf(w, "MARKET EXPECTATION OVER %d YEARS\n", e.Years)
	title.Fprintln(w, "===============================================")
	style.SignColor(e.MarketReturn).Fprintf(w, "MARKET RETURN (Rm): %s\n", style.PercentString(e.MarketReturn, 4))
	title.Fprintf(w, "RISK-FREE RATE (Rf): %s\n", style.PercentString(e.RiskFreeRate, 4))
	style.SignColor(e.RiskPremium).Fprintf(w, "RISK PREMIUM (RP): %s\n", style.PercentString(e.RiskPremium, 4))
	style.SignColor(e.ExpectedReturn).Fprintf(w, "EXPECTED RETURN E(R): %s\n", style.PercentString(e.ExpectedReturn, 4))
}

// PrintTuneSummary prints the best trial of a hyper-parameter search.
func PrintTuneSummary(w io.Writer, report *optimizer.HyperparameterOptimizeReport) {
	title := color.New(color.FgGreen)
	title.Fprintf(w, "STUDY %s: %d TRIALS, OBJECTIVE %s\n", report.Name, len(report.Trials), report.Objective)
	title.Fprintln(w, "===============================================")
	if report.Best == nil {
		style.NegativeColor.Fprintln(w, "NO COMPLETED TRIAL")
		return
	}

	style.SignColor(report.Best.Value).Fprintf(w, "BEST VALUE: %.6f\n", report.Best.Value)
	labels := make([]string, 0, len(report.Best.Parameters))
	for label := range report.Best.Parameters {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(w, "  %s = %v\n", label, report.Best.Parameters[label])
	}
}
