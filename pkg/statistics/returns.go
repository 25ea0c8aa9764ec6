package statistics

import (
	"math"
	"sort"
	"time"

	"github.com/c9s/riskstat/pkg/types"
)

// Series is a date-indexed sequence of values, dates ascending.
type Series struct {
	Dates  []time.Time
	Values []float64
}

func (s Series) Len() int {
	return len(s.Values)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// GroupByCode splits records per code, each group sorted by time.
func GroupByCode(records []types.Record) map[string][]types.Record {
	groups := make(map[string][]types.Record)
	for _, r := range records {
		groups[r.Code] = append(groups[r.Code], r)
	}

	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].Time.Before(g[j].Time)
		})
	}
	return groups
}

// Codes returns the distinct codes of the records, sorted.
func Codes(records []types.Record) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, r := range records {
		if _, ok := seen[r.Code]; ok {
			continue
		}
		seen[r.Code] = struct{}{}
		codes = append(codes, r.Code)
	}
	sort.Strings(codes)
	return codes
}

// ClosePrices returns the time-ordered closes of one code's records, missing closes included.
func ClosePrices(records []types.Record) []float64 {
	closes := make([]float64, len(records))
	for i, r := range records {
		closes[i] = r.Close
	}
	return closes
}

// SimpleReturns computes the close-to-close returns of time-ordered records.
// Missing closes are skipped so the next return is taken against the last known close;
// the first record has no return.
func SimpleReturns(records []types.Record) Series {
	var s Series
	prev := math.NaN()
	for _, r := range records {
		if !finite(r.Close) {
			continue
		}

		if finite(prev) && prev != 0 {
			s.Dates = append(s.Dates, r.Time)
			s.Values = append(s.Values, r.Close/prev-1)
		}
		prev = r.Close
	}
	return s
}

// DailyReturns computes the simple daily returns of every code.
func DailyReturns(records []types.Record) map[string]Series {
	groups := GroupByCode(records)
	returns := make(map[string]Series, len(groups))
	for code, g := range groups {
		returns[code] = SimpleReturns(g)
	}
	return returns
}

// MarketProxyReturns uses the equal-weight mean close of all securities as a market index
// and returns its daily percent change.
func MarketProxyReturns(records []types.Record) Series {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, r := range records {
		if !finite(r.Close) {
			continue
		}
		sums[r.Time] += r.Close
		counts[r.Time]++
	}

	dates := make([]time.Time, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sortDates(dates)

	var s Series
	for i := 1; i < len(dates); i++ {
		prev := sums[dates[i-1]] / float64(counts[dates[i-1]])
		cur := sums[dates[i]] / float64(counts[dates[i]])
		if prev == 0 {
			continue
		}
		s.Dates = append(s.Dates, dates[i])
		s.Values = append(s.Values, cur/prev-1)
	}
	return s
}

// BuildReturnMatrix pivots the closes into a dates x codes grid, takes the percent change
// of every column without filling gaps, and drops each date with any missing return.
func BuildReturnMatrix(records []types.Record) (*types.ReturnMatrix, error) {
	codes := Codes(records)
	column := make(map[string]int, len(codes))
	for i, c := range codes {
		column[c] = i
	}

	var dates []time.Time
	row := make(map[time.Time]int)
	for _, r := range records {
		if _, ok := row[r.Time]; !ok {
			row[r.Time] = 0
			dates = append(dates, r.Time)
		}
	}
	sortDates(dates)
	for i, d := range dates {
		row[d] = i
	}

	closes := make([][]float64, len(dates))
	for i := range closes {
		closes[i] = make([]float64, len(codes))
		for j := range closes[i] {
			closes[i][j] = math.NaN()
		}
	}
	for _, r := range records {
		closes[row[r.Time]][column[r.Code]] = r.Close
	}

	var keptDates []time.Time
	var rows [][]float64
	for t := 1; t < len(dates); t++ {
		ret := make([]float64, len(codes))
		complete := true
		for j := range codes {
			prev, cur := closes[t-1][j], closes[t][j]
			v := cur/prev - 1
			if !finite(prev) || !finite(cur) || !finite(v) {
				complete = false
				break
			}
			ret[j] = v
		}

		if !complete {
			continue
		}

		keptDates = append(keptDates, dates[t])
		rows = append(rows, ret)
	}

	return types.NewReturnMatrix(keptDates, codes, rows)
}

func sortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}
