package cmd

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/riskstat/pkg/cmd/cmdutil"
	"github.com/c9s/riskstat/pkg/dataset"
)

func init() {
	extractCmd.Flags().String("zip", "", "zip archive of the yearly exports")
	extractCmd.Flags().String("dest", "", "destination directory, defaults to the data directory")
	RootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "extract the zip archive of the yearly exports",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		zipFile, err := cmd.Flags().GetString("zip")
		if err != nil {
			return err
		}

		if len(zipFile) == 0 {
			return errors.New("--zip option is required")
		}

		dest, err := cmd.Flags().GetString("dest")
		if err != nil {
			return err
		}

		if len(dest) == 0 {
			conf, err := cmdutil.LoadConfig()
			if err != nil {
				return err
			}
			dest = conf.DataDir
		}

		files, err := dataset.ExtractZip(zipFile, dest)
		if err != nil {
			return err
		}

		log.Infof("extracted %d files into %s", len(files), dest)
		return nil
	},
}
