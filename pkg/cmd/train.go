package cmd

import (
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/riskstat/pkg/cmd/cmdutil"
	"github.com/c9s/riskstat/pkg/report"
	"github.com/c9s/riskstat/pkg/riskmodel"
	"github.com/c9s/riskstat/pkg/statistics"
	"github.com/c9s/riskstat/pkg/types"
)

func init() {
	trainCmd.Flags().Bool("no-progress", false, "hide the progress bar")
	RootCmd.AddCommand(trainCmd)
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "fit the risk model on the features of the configured years and score every security",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		noProgress, err := cmd.Flags().GetBool("no-progress")
		if err != nil {
			return err
		}

		conf, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		var bar *pb.ProgressBar
		if !noProgress {
			bar = pb.Full.Start(len(conf.Years.Years()))
			bar.SetTemplateString(`{{ string . "log" | green}} | {{counters . }} {{bar . }} {{percent . }} {{etime . }}`)
		}

		rf := conf.RiskFree.PeriodicRate()
		var features []statistics.Feature
		err = loadYearlyKLines(conf, func(year int, records []types.Record) error {
			if bar != nil {
				bar.Set("log", fmt.Sprintf("features of %d", year))
				defer bar.Increment()
			}

			features = append(features, statistics.ComputeFeatures(year, records, rf)...)
			return nil
		})
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return err
		}

		model, err := riskmodel.Train(features)
		if err != nil {
			return err
		}

		f, err := createOutputFile(conf, fmt.Sprintf("trained_risk_assessment_results_%d_%d.csv", conf.Years.From, conf.Years.To))
		if err != nil {
			return err
		}

		if err := report.WriteRiskAssessmentCSV(f, model.ScoreAll(features)); err != nil {
			return err
		}

		p, err := conf.OutputPath(fmt.Sprintf("trained_risk_model_predictions_%d_%d.csv", conf.Years.From, conf.Years.To))
		if err != nil {
			return err
		}

		if err := report.WritePredictionsCSVFile(p, model, features); err != nil {
			return err
		}

		log.Infof("scored %d feature rows", len(features))
		report.PrintModelTable(os.Stdout, model)
		return nil
	},
}
