package riskmodel

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/riskstat/pkg/statistics"
)

func feature(code string, alpha, beta, sharpe, vol float64) statistics.Feature {
	return statistics.Feature{
		Code:        code,
		Year:        2018,
		Alpha:       statistics.OK(alpha),
		Beta:        statistics.OK(beta),
		Sharpe:      statistics.OK(sharpe),
		Volatility:  statistics.OK(vol),
		TotalReturn: statistics.OK(0.1 + 2*alpha - 0.5*beta + 0.3*sharpe - 1.5*vol),
	}
}

func syntheticFeatures() []statistics.Feature {
	return []statistics.Feature{
		feature("000001", 0.001, 1.1, 0.05, 0.02),
		feature("000002", -0.002, 0.9, -0.01, 0.025),
		feature("000063", 0.0005, 1.3, 0.08, 0.018),
		feature("000100", 0.003, 0.7, 0.02, 0.03),
		feature("000333", -0.001, 1.0, 0.04, 0.022),
		feature("600000", 0.002, 1.2, -0.03, 0.027),
		feature("600036", 0.0, 0.8, 0.06, 0.015),
		feature("601318", 0.0015, 1.05, 0.01, 0.035),
	}
}

func TestTrain(t *testing.T) {
	features := syntheticFeatures()
	// incomplete rows are skipped
	features = append(features, statistics.Feature{Code: "300999", Alpha: statistics.InsufficientData()})

	m, err := Train(features)
	require.NoError(t, err)

	assert.Equal(t, 8, m.Samples)
	assert.InDelta(t, 0.1, m.Intercept, 1e-6)
	assert.InDelta(t, 2.0, m.Coefficients[VarAlpha], 1e-4)
	assert.InDelta(t, -0.5, m.Coefficients[VarBeta], 1e-4)
	assert.InDelta(t, 0.3, m.Coefficients[VarSharpeRatio], 1e-4)
	assert.InDelta(t, -1.5, m.Coefficients[VarVolatility], 1e-4)
	assert.InDelta(t, 1.0, m.R2, 1e-6)
}

func TestTrain_NotEnoughSamples(t *testing.T) {
	_, err := Train(syntheticFeatures()[:3])
	assert.True(t, errors.Is(err, ErrNotEnoughSamples))
}

func TestModel_Score(t *testing.T) {
	m := &Model{
		Coefficients: map[string]float64{
			VarAlpha:       2,
			VarBeta:        -0.5,
			VarSharpeRatio: 0.3,
			VarVolatility:  -1.5,
		},
		Intercept: 0.1,
	}

	f := feature("000001", 0.001, 1.1, 0.05, 0.02)
	score := m.Score(f)
	require.True(t, score.Valid())
	assert.InDelta(t, 0.002-0.55+0.015-0.03, score.Value, 1e-12)
	assert.InDelta(t, f.TotalReturn.Value, m.Predict(f).Value, 1e-12)

	incomplete := statistics.Feature{Code: "300999", Alpha: statistics.OK(0.1), Beta: statistics.Singular()}
	scored := m.ScoreAll([]statistics.Feature{f, incomplete})
	require.Len(t, scored, 2)
	assert.Equal(t, "000001", scored[0].Code)
	assert.True(t, scored[0].Score.Valid())
	assert.False(t, scored[1].Score.Valid())
	assert.True(t, math.IsNaN(scored[1].Score.Value))
}
