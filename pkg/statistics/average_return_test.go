package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/riskstat/pkg/types"
)

func TestAverageDailyReturns(t *testing.T) {
	records := []types.Record{
		closeRecord("A", day(2018, 1, 2), 10),
		closeRecord("B", day(2018, 1, 2), 20),
		closeRecord("C", day(2018, 1, 2), 10),
		closeRecord("A", day(2018, 1, 3), 11),
		closeRecord("B", day(2018, 1, 3), 19),
		closeRecord("C", day(2018, 1, 3), 10),
	}

	tests := []struct {
		name         string
		lower, upper float64
		want         float64
	}{
		{name: "no clipping", lower: 0, upper: 100, want: 0.05 / 3},
		{name: "clip to median", lower: 50, upper: 50, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageDailyReturns(records, tt.lower, tt.upper)
			require.Len(t, got, 1)
			assert.Equal(t, day(2018, 1, 3), got[0].Date)
			assert.InDelta(t, tt.want, got[0].AverageDailyReturn, 1e-12)
		})
	}
}
