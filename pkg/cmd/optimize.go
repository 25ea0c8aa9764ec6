package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c9s/riskstat/pkg/cmd/cmdutil"
	"github.com/c9s/riskstat/pkg/portfolio"
	"github.com/c9s/riskstat/pkg/report"
)

func init() {
	optimizeCmd.Flags().Int("year", 0, "year of the constituents, defaults to optimizer.year")
	optimizeCmd.Flags().Int("top", 20, "number of weights printed, 0 prints all")
	optimizeCmd.Flags().Bool("json", false, "print the result in json format")
	RootCmd.AddCommand(optimizeCmd)
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "maximize the drawdown penalized sharpe ratio of the constituents portfolio",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := cmd.Flags().GetInt("year")
		if err != nil {
			return err
		}

		top, err := cmd.Flags().GetInt("top")
		if err != nil {
			return err
		}

		printJsonFormat, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		conf, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		if year == 0 {
			year = conf.Optimizer.Year
		}

		returns, w0, err := prepareOptimization(conf, year)
		if err != nil {
			return err
		}

		result, err := portfolio.Optimize(returns, w0, conf.Optimizer.Params())
		if err != nil {
			return err
		}

		p, err := conf.OutputPath(fmt.Sprintf("optimized_portfolio_results_%d.xlsx", year))
		if err != nil {
			return err
		}

		if err := report.WritePortfolioWorkbook(p, result); err != nil {
			return err
		}

		charts := map[string]*report.Canvas{
			fmt.Sprintf("cumulative_returns_%d.png", year): report.DrawCumulativeReturns(result),
			fmt.Sprintf("drawdown_%d.png", year):           report.DrawDrawdown(result),
		}
		for name, canvas := range charts {
			p, err := conf.OutputPath(name)
			if err != nil {
				return err
			}

			if err := canvas.Save(p); err != nil {
				return err
			}
		}

		if printJsonFormat {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(out))
			return nil
		}

		report.PrintPortfolioSummary(os.Stdout, year, result)
		report.PrintWeightsTable(os.Stdout, result, top)
		return nil
	},
}
