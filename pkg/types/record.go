package types

import (
	"fmt"
	"time"
)

// DateLayout is the layout used when a date is written back to a flat file.
const DateLayout = "2006-01-02"

// Record is one security's daily bar joined with its index-membership weight.
type Record struct {
	Code   string    `json:"code"`
	Time   time.Time `json:"time"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
	Amount float64   `json:"amount"`

	// Weight is the constituent weight taken from the membership file of the same year.
	// HasWeight is false when the code is missing from that file (left join).
	Weight    float64 `json:"weight"`
	HasWeight bool    `json:"hasWeight"`
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s close=%f volume=%f amount=%f", r.Code, r.Time.Format(DateLayout), r.Close, r.Volume, r.Amount)
}

// Constituent is one row of the index membership file.
type Constituent struct {
	Code   string  `json:"code"`
	Weight float64 `json:"weight"`
}

// YieldPoint is one observation of the treasury yield sheet, the yield is in percent.
type YieldPoint struct {
	Date  time.Time `json:"date"`
	Yield float64   `json:"yield"`
}

// Date truncates t to midnight UTC, dropping the time-of-day part.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
