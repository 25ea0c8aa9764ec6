package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/riskstat/pkg/cmd/cmdutil"
	"github.com/c9s/riskstat/pkg/optimizer"
	"github.com/c9s/riskstat/pkg/report"
)

func init() {
	tuneCmd.Flags().Int("year", 0, "year of the constituents, defaults to optimizer.year")
	tuneCmd.Flags().String("optimizer-config", "", "search matrix config file, the default matrix is used when empty")
	tuneCmd.Flags().String("name", "", "study name")
	tuneCmd.Flags().Bool("no-progress", false, "hide the progress bar")
	tuneCmd.Flags().Bool("json", false, "print the report in json format")
	RootCmd.AddCommand(tuneCmd)
}

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "search the optimizer policy that scores the best portfolio",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := cmd.Flags().GetInt("year")
		if err != nil {
			return err
		}

		optimizerConfigFilename, err := cmd.Flags().GetString("optimizer-config")
		if err != nil {
			return err
		}

		studyName, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}

		noProgress, err := cmd.Flags().GetBool("no-progress")
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

		if studyName == "" {
			studyName = fmt.Sprintf("riskstat-%d", year)
		}

		var optConfig *optimizer.Config
		if optimizerConfigFilename == "" {
			optConfig, err = optimizer.ParseConfig(nil)
		} else {
			optConfig, err = optimizer.LoadConfig(optimizerConfigFilename)
		}
		if err != nil {
			return err
		}

		returns, w0, err := prepareOptimization(conf, year)
		if err != nil {
			return err
		}

		// the params json template used for patch
		configJson, err := json.Marshal(conf.Optimizer.Params())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		executor := &optimizer.PortfolioExecutor{
			Returns:        returns,
			InitialWeights: w0,
		}

		var hpReport *optimizer.HyperparameterOptimizeReport
		if optConfig.Algorithm == optimizer.HpOptimizerAlgorithmGrid {
			optz := &optimizer.GridOptimizer{Config: optConfig}
			hpReport, err = optz.Run(executor, configJson)
		} else {
			optz := &optimizer.HyperparameterOptimizer{
				SessionName:     studyName,
				Config:          optConfig,
				HideProgressBar: noProgress,
			}
			hpReport, err = optz.Run(ctx, executor, configJson)
		}
		if err != nil {
			return err
		}
		hpReport.Name = studyName

		resultsPath, err := conf.OutputPath(fmt.Sprintf("tune_results_%d.tsv", year))
		if err != nil {
			return err
		}

		if err := optimizer.FormatResultsTsvFile(resultsPath, hpReport.Parameters, hpReport.Trials); err != nil {
			return err
		}
		log.Infof("writing %s", resultsPath)

		historyPath, err := conf.OutputPath("tune_history.tsv")
		if err != nil {
			return err
		}

		if err := optimizer.AppendHistoryTsv(historyPath, time.Now(), hpReport); err != nil {
			return err
		}

		out, err := json.MarshalIndent(hpReport, "", "  ")
		if err != nil {
			return err
		}

		p, err := conf.OutputPath(fmt.Sprintf("tune_report_%d.json", year))
		if err != nil {
			return err
		}

		if err := os.WriteFile(p, out, 0o644); err != nil {
			return err
		}

		if printJsonFormat {
			fmt.Println(string(out))
			return nil
		}

		report.PrintTuneSummary(os.Stdout, hpReport)
		return nil
	},
}
