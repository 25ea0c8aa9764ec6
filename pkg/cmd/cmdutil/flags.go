package cmdutil

import "github.com/spf13/pflag"

// PersistentFlags defines the flags shared by every command
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("config", "", "config file")
	flags.String("data-dir", "", "directory of the yearly constituent and k-line exports")
	flags.String("output-dir", "", "directory of the generated reports")
	flags.String("log-file", "", "write json logs to the rotating file")
}
