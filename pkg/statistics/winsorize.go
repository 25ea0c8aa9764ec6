package statistics

import (
	"math"
	"sort"
)

const (
	DefaultWinsorizeLower = 5.0
	DefaultWinsorizeUpper = 95.0
)

// Percentile returns the p-th percentile (0..100) of xs with linear interpolation
// between the closest ranks, the default method of numpy.percentile.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}

	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Winsorize clips xs into the [lower, upper] percentile range, percentiles are given in 0..100.
func Winsorize(xs []float64, lower, upper float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	lo := percentileSorted(sorted, lower)
	hi := percentileSorted(sorted, upper)
	for i, x := range xs {
		out[i] = math.Min(math.Max(x, lo), hi)
	}
	return out
}
