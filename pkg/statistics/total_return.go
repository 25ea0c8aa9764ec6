package statistics

import "math"

// TotalReturn is the return between the first and the last finite close.
func TotalReturn(closes []float64) Estimate {
	var first, last float64
	var n int
	for _, c := range closes {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			continue
		}
		if n == 0 {
			first = c
		}
		last = c
		n++
	}

	if n < 2 {
		return InsufficientData()
	}

	if first == 0 {
		return Singular()
	}

	return OK((last - first) / first)
}
