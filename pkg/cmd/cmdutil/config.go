package cmdutil

import (
	"github.com/spf13/viper"

	"github.com/c9s/riskstat/pkg/config"
)

// LoadConfig loads the --config file and applies the bound flag and
// RISKSTAT_* environment overrides on top of it.
func LoadConfig() (*config.Config, error) {
	conf, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, err
	}

	if viper.IsSet("data-dir") && viper.GetString("data-dir") != "" {
		conf.DataDir = viper.GetString("data-dir")
	}

	if viper.IsSet("output-dir") && viper.GetString("output-dir") != "" {
		conf.OutputDir = viper.GetString("output-dir")
	}

	return conf, conf.Validate()
}
