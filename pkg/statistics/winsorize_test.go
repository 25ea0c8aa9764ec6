package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
python

import numpy as np

np.percentile([5, 1, 4, 2, 3], [0, 10, 25, 50, 100])
# array([1. , 1.4, 2. , 3. , 5. ])
*/
func TestPercentile(t *testing.T) {
	xs := []float64{5, 1, 4, 2, 3}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{10, 1.4},
		{25, 2},
		{50, 3},
		{100, 5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(xs, tt.p), 1e-12, "p=%v", tt.p)
	}

	assert.True(t, math.IsNaN(Percentile(nil, 50)))
	// input is left untouched
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, xs)
}

func TestWinsorize(t *testing.T) {
	assert.Equal(t, []float64{2, 2, 3, 4, 4}, Winsorize([]float64{1, 2, 3, 4, 5}, 25, 75))
	assert.Equal(t, []float64{1, 2, 3}, Winsorize([]float64{1, 2, 3}, 0, 100))
	assert.Empty(t, Winsorize(nil, DefaultWinsorizeLower, DefaultWinsorizeUpper))
}
