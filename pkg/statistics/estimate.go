package statistics

import (
	"encoding/json"
	"math"
	"strconv"
)

// Status tells whether an Estimate carries a usable value.
type Status int

const (
	StatusOK Status = iota
	// StatusInsufficientData means there were not enough observations to compute the statistic.
	StatusInsufficientData
	// StatusSingular means the statistic is undefined for the data, e.g. a zero standard deviation in a denominator.
	StatusSingular
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInsufficientData:
		return "insufficient data"
	case StatusSingular:
		return "singular"
	}
	return "unknown"
}

// Estimate is a computed statistic together with its status.
// Value is meaningful only when Status is StatusOK.
type Estimate struct {
	Value  float64 `json:"value"`
	Status Status  `json:"status"`
}

// OK wraps v, a non-finite v is reported as singular.
func OK(v float64) Estimate {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Singular()
	}
	return Estimate{Value: v}
}

func InsufficientData() Estimate {
	return Estimate{Value: math.NaN(), Status: StatusInsufficientData}
}

func Singular() Estimate {
	return Estimate{Value: math.NaN(), Status: StatusSingular}
}

func (e Estimate) Valid() bool {
	return e.Status == StatusOK
}

// Float64 returns the value and whether it is valid.
func (e Estimate) Float64() (float64, bool) {
	return e.Value, e.Valid()
}

// String formats the value for a flat file; an invalid estimate is an empty cell.
func (e Estimate) String() string {
	if !e.Valid() {
		return ""
	}
	return strconv.FormatFloat(e.Value, 'f', -1, 64)
}

// MarshalJSON writes an invalid value as null, NaN has no json representation.
func (e Estimate) MarshalJSON() ([]byte, error) {
	var v *float64
	if e.Valid() {
		v = &e.Value
	}

	return json.Marshal(struct {
		Value  *float64 `json:"value"`
		Status string   `json:"status"`
	}{Value: v, Status: e.Status.String()})
}
