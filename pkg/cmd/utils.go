package cmd

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/c9s/riskstat/pkg/config"
	"github.com/c9s/riskstat/pkg/dataset"
	"github.com/c9s/riskstat/pkg/portfolio"
	"github.com/c9s/riskstat/pkg/statistics"
	"github.com/c9s/riskstat/pkg/types"
)

// createOutputFile creates name under the configured output directory.
func createOutputFile(conf *config.Config, name string) (*os.File, error) {
	p, err := conf.OutputPath(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(p)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create %s", p)
	}

	log.Infof("writing %s", p)
	return f, nil
}

// loadYearlyKLines calls fn with the k-lines of every configured year, skipping missing years.
func loadYearlyKLines(conf *config.Config, fn func(year int, records []types.Record) error) error {
	return forEachYear(conf, conf.Loader().KLines, fn)
}

// loadYearlyMembers calls fn with the k-lines of the index constituents of every configured year,
// records of codes outside the constituent file are dropped.
func loadYearlyMembers(conf *config.Config, fn func(year int, records []types.Record) error) error {
	loader := conf.Loader()
	return forEachYear(conf, func(year int) ([]types.Record, error) {
		records, err := loader.Load(year)
		if err != nil {
			return nil, err
		}
		return members(records), nil
	}, fn)
}

func forEachYear(conf *config.Config, load func(year int) ([]types.Record, error), fn func(year int, records []types.Record) error) error {
	for _, year := range conf.Years.Years() {
		records, err := load(year)
		if errors.Is(err, os.ErrNotExist) {
			log.Warnf("no k-line file of %d, skipped", year)
			continue
		} else if err != nil {
			return err
		}

		if err := fn(year, records); err != nil {
			return errors.Wrapf(err, "year %d", year)
		}
	}
	return nil
}

// members keeps the records joined with a constituent weight.
func members(records []types.Record) []types.Record {
	var out []types.Record
	for _, r := range records {
		if r.HasWeight {
			out = append(out, r)
		}
	}
	return out
}

// prepareOptimization builds the return matrix of the constituents of the year and the
// starting weights aligned to its columns.
func prepareOptimization(conf *config.Config, year int) (*types.ReturnMatrix, []float64, error) {
	loader := conf.Loader()
	records, err := loader.KLines(year)
	if err != nil {
		return nil, nil, err
	}

	constituents, err := loader.Constituents(year)
	if err != nil {
		return nil, nil, err
	}

	returns, err := statistics.BuildReturnMatrix(members(dataset.Join(records, constituents)))
	if err != nil {
		return nil, nil, err
	}

	rows, cols := returns.Dims()
	log.Infof("return matrix of %d: %d dates x %d securities", year, rows, cols)

	switch conf.Optimizer.InitialWeights {
	case config.InitialWeightsEqual:
		w0 := make([]float64, cols)
		for i := range w0 {
			w0[i] = 1 / float64(cols)
		}
		return returns, w0, nil

	default:
		w0, err := portfolio.AlignWeights(returns.Codes, constituents)
		if err != nil {
			return nil, nil, err
		}
		return returns, w0, nil
	}
}
