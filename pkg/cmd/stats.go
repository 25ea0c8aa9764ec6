package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/c9s/riskstat/pkg/cmd/cmdutil"
	"github.com/c9s/riskstat/pkg/report"
	"github.com/c9s/riskstat/pkg/statistics"
)

func init() {
	statsCmd.Flags().Int("year", 0, "year of the k-line export, defaults to the last configured year")
	statsCmd.Flags().String("stat", "all", "volatility, alpha, beta, sharpe, return or all")
	statsCmd.Flags().Bool("table", false, "print the statistics table")
	RootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "compute the per-security statistics of one year",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := cmd.Flags().GetInt("year")
		if err != nil {
			return err
		}

		statName, err := cmd.Flags().GetString("stat")
		if err != nil {
			return err
		}

		printTable, err := cmd.Flags().GetBool("table")
		if err != nil {
			return err
		}

		stats := report.AllStatistics
		if statName != "all" {
			stat, err := report.ParseStatistic(statName)
			if err != nil {
				return err
			}
			stats = []report.Statistic{stat}
		}

		conf, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		if year == 0 {
			year = conf.Years.To
		}

		records, err := conf.Loader().KLines(year)
		if err != nil {
			return err
		}

		features := statistics.ComputeFeatures(year, records, conf.RiskFree.PeriodicRate())
		for _, stat := range stats {
			f, err := createOutputFile(conf, stat.FileName(year))
			if err != nil {
				return err
			}

			if err := report.WriteStatisticCSV(f, stat, features); err != nil {
				return err
			}
		}

		if printTable {
			report.PrintFeatureTable(os.Stdout, year, features)
		}
		return nil
	},
}
