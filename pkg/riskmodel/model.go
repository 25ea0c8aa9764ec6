package riskmodel

import (
	"github.com/pkg/errors"
	"github.com/sajari/regression"
	"github.com/sirupsen/logrus"

	"github.com/c9s/riskstat/pkg/statistics"
)

var log = logrus.WithField("component", "riskmodel")

var ErrNotEnoughSamples = errors.New("not enough complete feature rows to train the risk model")

const (
	VarAlpha       = "Alpha"
	VarBeta        = "Beta"
	VarSharpeRatio = "SharpeRatio"
	VarVolatility  = "Volatility"
)

// Variables are the regressors in coefficient order, the observed value is the total return.
var Variables = []string{VarAlpha, VarBeta, VarSharpeRatio, VarVolatility}

// Model holds the fitted weights of the feature regression.
type Model struct {
	Coefficients map[string]float64 `json:"coefficients"`
	Intercept    float64            `json:"intercept"`
	R2           float64            `json:"r2"`
	Samples      int                `json:"samples"`
}

// ScoredFeature is a feature row with its risk score; Score is valid only for complete rows.
type ScoredFeature struct {
	statistics.Feature

	Score statistics.Estimate `json:"score"`
}

func values(f statistics.Feature) []float64 {
	return []float64{f.Alpha.Value, f.Beta.Value, f.Sharpe.Value, f.Volatility.Value}
}

// Train fits TotalReturn = c + sum(coef_i * x_i) by ordinary least squares over the complete rows.
func Train(features []statistics.Feature) (*Model, error) {
	r := new(regression.Regression)
	r.SetObserved("TotalReturn")
	for i, name := range Variables {
		r.SetVar(i, name)
	}

	var points regression.DataPoints
	var skipped int
	for _, f := range features {
		if !f.Complete() {
			skipped++
			continue
		}
		points = append(points, regression.DataPoint(f.TotalReturn.Value, values(f)))
	}

	if skipped > 0 {
		log.Warnf("skipped %d incomplete feature rows", skipped)
	}

	if len(points) < len(Variables)+1 {
		return nil, errors.Wrapf(ErrNotEnoughSamples, "got %d rows, need at least %d", len(points), len(Variables)+1)
	}

	r.Train(points...)
	if err := r.Run(); err != nil {
		return nil, errors.Wrap(err, "regression failed")
	}

	m := &Model{
		Coefficients: make(map[string]float64, len(Variables)),
		Intercept:    r.Coeff(0),
		R2:           r.R2,
		Samples:      len(points),
	}
	for i, name := range Variables {
		m.Coefficients[name] = r.Coeff(i + 1)
	}

	log.Infof("trained risk model on %d rows: R2=%f", m.Samples, m.R2)
	return m, nil
}

// Score is the weighted sum of the features without the intercept.
func (m *Model) Score(f statistics.Feature) statistics.Estimate {
	if !f.Complete() {
		return statistics.InsufficientData()
	}

	var score float64
	for i, x := range values(f) {
		score += m.Coefficients[Variables[i]] * x
	}
	return statistics.OK(score)
}

// Predict is Score plus the intercept, the fitted total return.
func (m *Model) Predict(f statistics.Feature) statistics.Estimate {
	s := m.Score(f)
	if !s.Valid() {
		return s
	}
	return statistics.OK(s.Value + m.Intercept)
}

func (m *Model) ScoreAll(features []statistics.Feature) []ScoredFeature {
	scored := make([]ScoredFeature, len(features))
	for i, f := range features {
		scored[i] = ScoredFeature{Feature: f, Score: m.Score(f)}
	}
	return scored
}
