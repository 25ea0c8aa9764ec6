package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCumulativeReturns(t *testing.T) {
	cum := CumulativeReturns([]float64{0.1, 0.1, -0.5})
	assert.InDeltaSlice(t, []float64{0.1, 0.21, -0.395}, cum, 1e-12)
	assert.Empty(t, CumulativeReturns(nil))
}

func TestDrawdowns(t *testing.T) {
	tests := []struct {
		name  string
		cum   []float64
		want  []float64
		peaks []int
		max   float64
		at    int
	}{
		{
			name:  "recovering",
			cum:   []float64{0.1, 0.2, 0.05, 0.3},
			want:  []float64{0, 0, 0.75, 0},
			peaks: []int{0, 1, 1, 3},
			max:   0.75,
			at:    2,
		},
		{
			name:  "zero peak has no drawdown",
			cum:   []float64{0, -0.1, -0.05},
			want:  []float64{0, 0, 0},
			peaks: []int{0, 0, 0},
			max:   0,
			at:    0,
		},
		{
			name:  "empty",
			cum:   nil,
			want:  []float64{},
			peaks: []int{},
			max:   0,
			at:    -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dd, peaks := DrawdownsWithPeaks(tt.cum)
			assert.InDeltaSlice(t, tt.want, dd, 1e-12)
			assert.Equal(t, tt.peaks, peaks)

			m, at := MaxDrawdown(Drawdowns(tt.cum))
			assert.InDelta(t, tt.max, m, 1e-12)
			assert.Equal(t, tt.at, at)
		})
	}
}
