package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/riskstat/pkg/cmd/cmdutil"
	"github.com/c9s/riskstat/pkg/datasource/xlsxsource"
	"github.com/c9s/riskstat/pkg/report"
	"github.com/c9s/riskstat/pkg/statistics"
)

func init() {
	expectedCmd.Flags().String("treasury", "", "treasury yield workbook, defaults to treasuryFile of the config")
	expectedCmd.Flags().String("sheet", "", "sheet of the yields, defaults to the first sheet")
	expectedCmd.Flags().Bool("json", false, "print the expectation in json format")
	RootCmd.AddCommand(expectedCmd)
}

var expectedCmd = &cobra.Command{
	Use:   "expected",
	Short: "estimate the expected market return from the constituent weights and the treasury yields",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		treasuryFile, err := cmd.Flags().GetString("treasury")
		if err != nil {
			return err
		}

		sheet, err := cmd.Flags().GetString("sheet")
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

		if treasuryFile == "" {
			treasuryFile = conf.TreasuryFile
		}

		if treasuryFile == "" {
			return errors.New("--treasury option or treasuryFile config is required")
		}

		loader := conf.Loader()
		years, err := loader.ConstituentYears()
		if err != nil {
			return err
		}

		var annual []float64
		for _, year := range years {
			constituents, err := loader.Constituents(year)
			if err != nil {
				return err
			}

			proxy, ok := statistics.AnnualProxy(constituents).Float64()
			if !ok {
				log.Warnf("no usable weight in the constituents of %d, skipped", year)
				continue
			}
			annual = append(annual, proxy)
		}

		yields, err := xlsxsource.ReadTreasuryYields(treasuryFile, sheet)
		if err != nil {
			return err
		}

		expectation, err := statistics.NewMarketExpectation(annual, yields)
		if err != nil {
			return err
		}

		if printJsonFormat {
			out, err := json.MarshalIndent(expectation, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(out))
			return nil
		}

		report.PrintMarketExpectation(os.Stdout, expectation)
		return nil
	},
}
