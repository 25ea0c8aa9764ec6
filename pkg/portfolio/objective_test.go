package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

func TestObjective_Gradient(t *testing.T) {
	tests := []struct {
		name          string
		rows          [][]float64
		threshold     float64
		penaltyFactor float64
		w             []float64
		penalized     bool
	}{
		{
			name:          "sharpe only",
			rows:          scenarioReturns,
			threshold:     0.7,
			penaltyFactor: 100,
			w:             []float64{0.3, 0.3, 0.4},
		},
		{
			name:          "drawdown penalty active",
			rows:          drawdownReturns,
			threshold:     0.5,
			penaltyFactor: 10,
			w:             []float64{0.3, 0.3, 0.4},
			penalized:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReturnMatrix(t, tt.rows)
			obj := NewObjective(r.Data, 0.001, tt.threshold, tt.penaltyFactor)

			if tt.penalized {
				assert.Greater(t, obj.Penalty(tt.w), 0.0)
			} else {
				assert.Equal(t, 0.0, obj.Penalty(tt.w))
			}

			grad := make([]float64, len(tt.w))
			obj.Grad(grad, tt.w)

			want := fd.Gradient(nil, obj.Func, tt.w, &fd.Settings{Formula: fd.Central})
			for i := range want {
				assert.InDelta(t, want[i], grad[i], 1e-4*(1+abs(want[i])), "component %d", i)
			}
		})
	}
}

func TestObjective_Singular(t *testing.T) {
	r := newReturnMatrix(t, [][]float64{
		{0.01, 0.01},
		{0.01, 0.01},
		{0.01, 0.01},
	})

	obj := NewObjective(r.Data, 0.001, 0.7, 100)
	w := []float64{0.5, 0.5}
	assert.Equal(t, SingularObjective, obj.Func(w))

	grad := []float64{1, 1}
	obj.Grad(grad, w)
	assert.Equal(t, []float64{0, 0}, grad)
}

// the penalty contribution grows with the penalty factor for a fixed drawdown breach
func TestObjective_PenaltyMonotonic(t *testing.T) {
	r := newReturnMatrix(t, drawdownReturns)
	w := []float64{0.3, 0.3, 0.4}

	prev := -1.0
	for _, factor := range []float64{0, 1, 10, 100, 1000} {
		obj := NewObjective(r.Data, 0.001, 0.5, factor)
		penalty := obj.Penalty(w)
		assert.GreaterOrEqual(t, penalty, prev, "penalty factor %v", factor)
		prev = penalty
	}
	assert.Greater(t, prev, 0.0)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
