package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/c9s/riskstat/pkg/dataset"
	"github.com/c9s/riskstat/pkg/portfolio"
	"github.com/c9s/riskstat/pkg/statistics"
)

const (
	DefaultDataDir   = "data"
	DefaultOutputDir = "output"

	DefaultFromYear = 2014
	DefaultToYear   = 2024

	DefaultOptimizeYear = 2018
)

// InitialWeights selects the starting point of the portfolio optimizer.
type InitialWeights string

const (
	InitialWeightsMarketCap InitialWeights = "marketCap"
	InitialWeightsEqual     InitialWeights = "equal"
)

type YearRange struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Years returns every year of the inclusive range.
func (r YearRange) Years() []int {
	var years []int
	for y := r.From; y <= r.To; y++ {
		years = append(years, y)
	}
	return years
}

func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}

// Files holds the fmt patterns of the yearly exports, each taking the year.
type Files struct {
	Constituents string `json:"constituents" yaml:"constituents"`
	KLines       string `json:"klines" yaml:"klines"`
}

type RiskFree struct {
	AnnualRate     float64 `json:"annualRate" yaml:"annualRate"`
	PeriodsPerYear int     `json:"periodsPerYear" yaml:"periodsPerYear"`
}

// PeriodicRate converts the annual rate into a per-period rate.
func (r RiskFree) PeriodicRate() float64 {
	return statistics.PeriodicRiskFreeRate(r.AnnualRate, r.PeriodsPerYear)
}

// Winsorize holds the percentile bounds, in 0..100.
type Winsorize struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

type Optimizer struct {
	Year               int              `json:"year" yaml:"year"`
	AnnualRiskFreeRate float64          `json:"annualRiskFreeRate" yaml:"annualRiskFreeRate"`
	WeightCap          float64          `json:"weightCap" yaml:"weightCap"`
	MaxDrawdown        float64          `json:"maxDrawdown" yaml:"maxDrawdown"`
	PenaltyFactor      float64          `json:"penaltyFactor" yaml:"penaltyFactor"`
	Method             portfolio.Method `json:"method" yaml:"method"`
	MaxIterations      int              `json:"maxIterations" yaml:"maxIterations"`
	Tolerance          float64          `json:"tolerance" yaml:"tolerance"`
	InitialWeights     InitialWeights   `json:"initialWeights" yaml:"initialWeights"`
}

// Params converts the section into the optimizer policy. The annual
// risk-free rate is de-annualized over the trading days of a year.
func (o Optimizer) Params() portfolio.Params {
	return portfolio.Params{
		RiskFreeRate:  statistics.PeriodicRiskFreeRate(o.AnnualRiskFreeRate, statistics.DailyToAnnualFactor),
		WeightCap:     o.WeightCap,
		MaxDrawdown:   o.MaxDrawdown,
		PenaltyFactor: o.PenaltyFactor,
		Method:        o.Method,
		MaxIterations: o.MaxIterations,
		Tolerance:     o.Tolerance,
	}
}

type Config struct {
	DataDir   string `json:"dataDir" yaml:"dataDir"`
	OutputDir string `json:"outputDir" yaml:"outputDir"`

	Years     YearRange `json:"years" yaml:"years"`
	Files     Files     `json:"files" yaml:"files"`
	RiskFree  RiskFree  `json:"riskFree" yaml:"riskFree"`
	Winsorize Winsorize `json:"winsorize" yaml:"winsorize"`
	Optimizer Optimizer `json:"optimizer" yaml:"optimizer"`

	// TreasuryFile is the workbook of the treasury yield curve used by the market expectation.
	TreasuryFile string `json:"treasuryFile,omitempty" yaml:"treasuryFile,omitempty"`
}

func Default() *Config {
	return &Config{
		DataDir:   DefaultDataDir,
		OutputDir: DefaultOutputDir,
		Years:     YearRange{From: DefaultFromYear, To: DefaultToYear},
		Files: Files{
			Constituents: dataset.DefaultConstituentPattern,
			KLines:       dataset.DefaultKLinePattern,
		},
		RiskFree: RiskFree{
			AnnualRate:     statistics.DefaultAnnualRiskFreeRate,
			PeriodsPerYear: statistics.DailyToAnnualFactor,
		},
		Winsorize: Winsorize{
			Lower: statistics.DefaultWinsorizeLower,
			Upper: statistics.DefaultWinsorizeUpper,
		},
		Optimizer: Optimizer{
			Year:               DefaultOptimizeYear,
			AnnualRiskFreeRate: portfolio.DefaultAnnualRiskFreeRate,
			WeightCap:          portfolio.DefaultWeightCap,
			MaxDrawdown:        portfolio.DefaultMaxDrawdown,
			PenaltyFactor:      portfolio.DefaultPenaltyFactor,
			Method:             portfolio.MethodProjectedGradient,
			MaxIterations:      portfolio.DefaultMaxIterations,
			Tolerance:          portfolio.DefaultTolerance,
			InitialWeights:     InitialWeightsMarketCap,
		},
	}
}

// Load reads the yaml file over the defaults. An empty path returns the defaults.
func Load(configFile string) (*Config, error) {
	if configFile == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config file %s", configFile)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", configFile)
	}
	return config, nil
}

// Parse decodes the yaml document over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports every problem of the config at once.
func (c *Config) Validate() (err error) {
	if c.DataDir == "" {
		err = multierr.Append(err, errors.New("dataDir is empty"))
	}

	if c.OutputDir == "" {
		err = multierr.Append(err, errors.New("outputDir is empty"))
	}

	if c.Years.From <= 0 || c.Years.To < c.Years.From {
		err = multierr.Append(err, fmt.Errorf("invalid year range %d..%d", c.Years.From, c.Years.To))
	}

	if c.Files.Constituents == "" || c.Files.KLines == "" {
		err = multierr.Append(err, errors.New("files.constituents and files.klines are required"))
	}

	if c.RiskFree.PeriodsPerYear <= 0 {
		err = multierr.Append(err, fmt.Errorf("riskFree.periodsPerYear must be positive, got %d", c.RiskFree.PeriodsPerYear))
	}

	if c.Winsorize.Lower < 0 || c.Winsorize.Upper > 100 || c.Winsorize.Lower > c.Winsorize.Upper {
		err = multierr.Append(err, fmt.Errorf("invalid winsorize bounds [%v, %v]", c.Winsorize.Lower, c.Winsorize.Upper))
	}

	switch c.Optimizer.InitialWeights {
	case InitialWeightsMarketCap, InitialWeightsEqual:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown optimizer.initialWeights %q", c.Optimizer.InitialWeights))
	}

	if e := c.Optimizer.Params().Validate(); e != nil {
		err = multierr.Append(err, errors.Wrap(e, "optimizer"))
	}

	if c.Optimizer.WeightCap <= 0 || c.Optimizer.WeightCap > 1 {
		err = multierr.Append(err, fmt.Errorf("optimizer.weightCap %v is out of (0, 1]", c.Optimizer.WeightCap))
	}

	return err
}

// Loader returns the dataset loader of the configured directory and file patterns.
func (c *Config) Loader() *dataset.Loader {
	return &dataset.Loader{
		Dir:                c.DataDir,
		ConstituentPattern: c.Files.Constituents,
		KLinePattern:       c.Files.KLines,
	}
}

// OutputPath joins name onto the output directory, creating the directory when missing.
func (c *Config) OutputPath(name string) (string, error) {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "unable to create output directory %s", c.OutputDir)
	}
	return filepath.Join(c.OutputDir, name), nil
}
