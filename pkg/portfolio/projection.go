package portfolio

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const projectionIterations = 200

// ProjectCappedSimplex returns the Euclidean projection of v onto {w : 0 <= w_i <= cap, sum(w) = 1}.
// The projection is clip(v - tau, 0, cap) where tau is found by bisection.
// The set must be feasible, len(v) * cap >= 1.
func ProjectCappedSimplex(v []float64, cap float64) []float64 {
	w := make([]float64, len(v))
	if len(v) == 0 {
		return w
	}

	// sum(clip(v - lo)) = n * cap >= 1 and sum(clip(v - hi)) = 0
	lo := floats.Min(v) - cap
	hi := floats.Max(v)
	for i := 0; i < projectionIterations && hi-lo > 1e-16*(1+math.Abs(hi)); i++ {
		tau := (lo + hi) / 2
		if clippedSum(v, tau, cap) >= 1 {
			lo = tau
		} else {
			hi = tau
		}
	}

	for i, x := range v {
		w[i] = clip(x-lo, cap)
	}

	// spread the remaining bisection error over the free coordinates
	rest := 1 - floats.Sum(w)
	var free int
	for _, x := range w {
		if x > 0 && x < cap {
			free++
		}
	}
	if free > 0 && rest != 0 {
		for i, x := range w {
			if x > 0 && x < cap {
				w[i] = clip(x+rest/float64(free), cap)
			}
		}
	}
	return w
}

func clippedSum(v []float64, tau, cap float64) float64 {
	var sum float64
	for _, x := range v {
		sum += clip(x-tau, cap)
	}
	return sum
}

func clip(x, cap float64) float64 {
	return math.Min(math.Max(x, 0), cap)
}
