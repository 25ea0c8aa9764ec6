package statistics

// CumulativeReturns compounds periodic returns: cum_t = prod(1 + r_s, s <= t) - 1.
func CumulativeReturns(returns []float64) []float64 {
	cum := make([]float64, len(returns))
	acc := 1.0
	for i, r := range returns {
		acc *= 1 + r
		cum[i] = acc - 1
	}
	return cum
}

// Drawdowns computes (peak_t - cum_t) / peak_t against the running peak of a cumulative return series.
// A step whose peak is exactly zero has no drawdown.
func Drawdowns(cum []float64) []float64 {
	dd, _ := DrawdownsWithPeaks(cum)
	return dd
}

// DrawdownsWithPeaks is Drawdowns that also returns, for every step, the index of its running peak.
func DrawdownsWithPeaks(cum []float64) (dd []float64, peaks []int) {
	dd = make([]float64, len(cum))
	peaks = make([]int, len(cum))

	p := 0
	for i, c := range cum {
		if c > cum[p] {
			p = i
		}
		peaks[i] = p

		peak := cum[p]
		if peak == 0 {
			continue
		}
		dd[i] = (peak - c) / peak
	}
	return dd, peaks
}

// MaxDrawdown returns the largest value of a drawdown series and its index, (0, -1) for an empty series.
func MaxDrawdown(dd []float64) (float64, int) {
	if len(dd) == 0 {
		return 0, -1
	}

	m, at := dd[0], 0
	for i, d := range dd {
		if d > m {
			m, at = d, i
		}
	}
	return m, at
}
