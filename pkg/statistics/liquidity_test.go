package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/riskstat/pkg/types"
)

func liquidityRecords() []types.Record {
	return []types.Record{
		{Code: "A", Time: day(2018, 12, 28), Volume: 100, Amount: 10},
		{Code: "B", Time: day(2018, 12, 28), Volume: 300, Amount: 30},
		{Code: "A", Time: day(2018, 12, 31), Volume: 200, Amount: 20},
		{Code: "B", Time: day(2018, 12, 31), Volume: math.NaN(), Amount: 20},
		{Code: "A", Time: day(2019, 1, 2), Volume: 300, Amount: 80},
		{Code: "B", Time: day(2019, 1, 2), Volume: 0, Amount: math.NaN()},
	}
}

func TestMinMaxScale(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, MinMaxScale([]float64{2, 3, 4}), 1e-12)
	assert.Equal(t, []float64{0, 0}, MinMaxScale([]float64{7, 7}))
	assert.Empty(t, MinMaxScale(nil))
}

func TestDailyLiquidityIndex(t *testing.T) {
	daily, err := DailyLiquidityIndex(liquidityRecords())
	require.NoError(t, err)
	require.Len(t, daily, 3)

	// volume 400, 200, 300; amount 40, 40, 80
	assert.Equal(t, day(2018, 12, 28), daily[0].Date)
	assert.InDelta(t, 1.0, daily[0].Volume, 1e-12)
	assert.InDelta(t, 0.0, daily[1].Volume, 1e-12)
	assert.InDelta(t, 0.5, daily[2].Volume, 1e-12)
	assert.InDelta(t, 0.0, daily[0].Amount, 1e-12)
	assert.InDelta(t, 1.0, daily[2].Amount, 1e-12)
	assert.InDelta(t, 0.5, daily[2].TurnoverRate, 1e-12)

	assert.InDelta(t, 2.0/3.0, daily[0].MarketLiquidity, 1e-12)
	assert.InDelta(t, 0.0, daily[1].MarketLiquidity, 1e-12)
	assert.InDelta(t, 2.0/3.0, daily[2].MarketLiquidity, 1e-12)
}

func TestDailyLiquidityIndex_ZeroVolume(t *testing.T) {
	daily, err := DailyLiquidityIndex([]types.Record{
		{Code: "A", Time: day(2018, 1, 2), Amount: 10},
		{Code: "A", Time: day(2018, 1, 3), Amount: 20},
	})
	require.NoError(t, err)
	for _, d := range daily {
		assert.Equal(t, 0.0, d.TurnoverRate)
		assert.Equal(t, 0.0, d.Volume)
	}
	assert.InDelta(t, 1.0/3.0, daily[1].MarketLiquidity, 1e-12)
}

func TestDailyLiquidityIndex_MissingTime(t *testing.T) {
	_, err := DailyLiquidityIndex([]types.Record{{Code: "A", Volume: 1}})
	assert.ErrorIs(t, err, ErrMissingTime)

	_, err = YearlyLiquidityIndex([]types.Record{{Code: "A", Volume: 1}})
	assert.ErrorIs(t, err, ErrMissingTime)
}

func TestYearlyLiquidityIndex(t *testing.T) {
	yearly, err := YearlyLiquidityIndex(liquidityRecords())
	require.NoError(t, err)
	require.Len(t, yearly, 2)

	assert.Equal(t, 2018, yearly[0].Year)
	assert.InDelta(t, 0.5, yearly[0].AverageVolume, 1e-12)
	assert.InDelta(t, 0.0, yearly[0].AverageAmount, 1e-12)
	assert.InDelta(t, 0.5, yearly[0].AverageTurnoverRate, 1e-12)
	assert.InDelta(t, 1.0/3.0, yearly[0].MarketLiquidity, 1e-12)

	assert.Equal(t, 2019, yearly[1].Year)
	assert.InDelta(t, 2.0/3.0, yearly[1].MarketLiquidity, 1e-12)
}
