package statistics

import (
	"time"

	"github.com/c9s/riskstat/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func closeRecord(code string, t time.Time, close float64) types.Record {
	return types.Record{Code: code, Time: t, Close: close, Volume: 1, Amount: close}
}
