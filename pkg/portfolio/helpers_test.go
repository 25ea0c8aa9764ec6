package portfolio

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/c9s/riskstat/pkg/types"
)

func newReturnMatrix(t *testing.T, rows [][]float64) *types.ReturnMatrix {
	t.Helper()

	var n int
	if len(rows) > 0 {
		n = len(rows[0])
	}

	dates := make([]time.Time, len(rows))
	for i := range dates {
		dates[i] = time.Date(2018, 1, 2+i, 0, 0, 0, 0, time.UTC)
	}

	codes := make([]string, n)
	for i := range codes {
		if i < 26 {
			codes[i] = string(rune('A' + i))
		} else {
			codes[i] = fmt.Sprintf("S%03d", i)
		}
	}

	m, err := types.NewReturnMatrix(dates, codes, rows)
	require.NoError(t, err)
	return m
}

// scenarioReturns is a 5 dates x 3 securities window.
var scenarioReturns = [][]float64{
	{0.01, 0.02, -0.01},
	{0.00, 0.01, 0.02},
	{-0.02, 0.00, 0.01},
	{0.01, -0.01, 0.00},
	{0.02, 0.01, 0.01},
}

// drawdownReturns loses more than its first-day gain by the fourth day for any long-only weights.
var drawdownReturns = [][]float64{
	{0.05, 0.04, 0.03},
	{-0.02, -0.03, -0.01},
	{0.01, 0.00, 0.02},
	{-0.03, -0.02, -0.04},
	{0.02, 0.03, 0.01},
}

// factorReturns draws a one-factor market: r = beta * f + noise, with a slightly negative market drift.
func factorReturns(dates, securities int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))

	betas := make([]float64, securities)
	for i := range betas {
		betas[i] = 0.5 + rng.Float64()
	}

	rows := make([][]float64, dates)
	for t := range rows {
		market := -0.001 + 0.015*rng.NormFloat64()
		rows[t] = make([]float64, securities)
		for i := range rows[t] {
			rows[t][i] = betas[i]*market + 0.02*rng.NormFloat64()
		}
	}
	return rows
}
