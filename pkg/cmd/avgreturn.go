package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/riskstat/pkg/cmd/cmdutil"
	"github.com/c9s/riskstat/pkg/report"
	"github.com/c9s/riskstat/pkg/statistics"
	"github.com/c9s/riskstat/pkg/types"
)

func init() {
	RootCmd.AddCommand(avgReturnCmd)
}

var avgReturnCmd = &cobra.Command{
	Use:   "avgreturn",
	Short: "compute the winsorized average daily return of the index constituents",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		var rows []statistics.AverageReturn
		err = loadYearlyMembers(conf, func(year int, records []types.Record) error {
			returns := statistics.AverageDailyReturns(records, conf.Winsorize.Lower, conf.Winsorize.Upper)
			log.Infof("%d: %d trading dates", year, len(returns))
			rows = append(rows, returns...)
			return nil
		})
		if err != nil {
			return err
		}

		p, err := conf.OutputPath(fmt.Sprintf("average_daily_return_%d_%d.xlsx", conf.Years.From, conf.Years.To))
		if err != nil {
			return err
		}

		return report.WriteAverageReturnWorkbook(p, rows)
	},
}
