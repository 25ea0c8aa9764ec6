package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/riskstat/pkg/cmd/cmdutil"
	"github.com/c9s/riskstat/pkg/report"
	"github.com/c9s/riskstat/pkg/statistics"
	"github.com/c9s/riskstat/pkg/types"
)

func init() {
	liquidityCmd.Flags().Bool("daily", false, "write the daily indicators workbook instead of the yearly summary")
	RootCmd.AddCommand(liquidityCmd)
}

var liquidityCmd = &cobra.Command{
	Use:   "liquidity",
	Short: "compute the market liquidity index of the configured years",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		daily, err := cmd.Flags().GetBool("daily")
		if err != nil {
			return err
		}

		conf, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		// every year is scaled on its own
		var dailyRows []statistics.DailyLiquidity
		var yearlyRows []statistics.YearlyLiquidity
		err = loadYearlyKLines(conf, func(year int, records []types.Record) error {
			if daily {
				rows, err := statistics.DailyLiquidityIndex(records)
				if err != nil {
					return err
				}
				dailyRows = append(dailyRows, rows...)
				return nil
			}

			rows, err := statistics.YearlyLiquidityIndex(records)
			if err != nil {
				return err
			}
			yearlyRows = append(yearlyRows, rows...)
			return nil
		})
		if err != nil {
			return err
		}

		suffix := fmt.Sprintf("%d_%d", conf.Years.From, conf.Years.To)
		if daily {
			p, err := conf.OutputPath("daily_market_liquidity_" + suffix + ".xlsx")
			if err != nil {
				return err
			}
			return report.WriteDailyLiquidityWorkbook(p, dailyRows)
		}

		f, err := createOutputFile(conf, "market_liquidity_"+suffix+".csv")
		if err != nil {
			return err
		}

		if err := report.WriteYearlyLiquidityCSV(f, yearlyRows); err != nil {
			return err
		}

		if len(yearlyRows) < 2 {
			log.Warnf("%d year of liquidity, chart skipped", len(yearlyRows))
		} else {
			p, err := conf.OutputPath("market_liquidity_" + suffix + ".png")
			if err != nil {
				return err
			}

			if err := report.DrawYearlyLiquidity(yearlyRows).Save(p); err != nil {
				return err
			}
		}

		report.PrintYearlyLiquidityTable(os.Stdout, yearlyRows)
		return nil
	},
}
