package csvsource

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/c9s/riskstat/pkg/types"
)

var (
	// ErrMissingColumn is returned when the CSV header does not carry a required column.
	ErrMissingColumn = errors.New("missing column")

	// ErrNotEnoughColumns is returned when a CSV record is shorter than the header requires.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidTimeFormat is returned when the time column can not be parsed by any known layout.
	ErrInvalidTimeFormat = errors.New("cannot parse time string")

	// ErrInvalidPriceFormat is returned when the close price is not a valid decimal.
	ErrInvalidPriceFormat = errors.New("close price must be in valid decimal format")

	// ErrInvalidVolumeFormat is returned when volume or amount is not a valid decimal.
	ErrInvalidVolumeFormat = errors.New("volume and amount must be in valid float format")

	// ErrInvalidWeightFormat is returned when the constituent weight is not a valid decimal.
	ErrInvalidWeightFormat = errors.New("weight must be in valid float format")
)

// TimeLayouts are tried in order when decoding the time column.
var TimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006/01/02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

const (
	ColumnCode   = "code"
	ColumnTime   = "time"
	ColumnClose  = "close"
	ColumnVolume = "volume"
	ColumnAmount = "amount"
	ColumnWeight = "weight"
)

// KLineColumns are the columns required by the default k-line decoder.
var KLineColumns = []string{ColumnCode, ColumnTime, ColumnClose, ColumnVolume, ColumnAmount}

// ConstituentColumns are the columns required by the constituent decoder.
var ConstituentColumns = []string{ColumnCode, ColumnWeight}

// Header maps a lower-cased column name to its position.
type Header map[string]int

// NewHeader indexes the header row and checks that every required column is present.
func NewHeader(columns []string, required ...string) (Header, error) {
	h := make(Header, len(columns))
	for i, c := range columns {
		// the first cell may carry a UTF-8 BOM when the file was exported from Excel
		c = strings.TrimPrefix(c, "\ufeff")
		h[strings.ToLower(strings.TrimSpace(c))] = i
	}

	for _, r := range required {
		if _, ok := h[r]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, r)
		}
	}
	return h, nil
}

func (h Header) get(record []string, column string) (string, error) {
	i, ok := h[column]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}
	if i >= len(record) {
		return "", ErrNotEnoughColumns
	}
	return strings.TrimSpace(record[i]), nil
}

// CSVKLineDecoder is an extension point for CSVKLineReader to support custom file formats.
type CSVKLineDecoder func(record []string, header Header) (types.Record, error)

// DefaultCSVKLineDecoder decodes the code,time,close,volume,amount columns of a daily k-line export.
// An empty numeric cell decodes to NaN, the same way a data frame reader marks a missing value.
func DefaultCSVKLineDecoder(record []string, header Header) (types.Record, error) {
	var r, empty types.Record

	code, err := header.get(record, ColumnCode)
	if err != nil {
		return empty, err
	}
	r.Code = code

	ts, err := header.get(record, ColumnTime)
	if err != nil {
		return empty, err
	}

	t, err := ParseTime(ts)
	if err != nil {
		return empty, err
	}
	r.Time = t

	if r.Close, err = decodeFloat(header, record, ColumnClose, ErrInvalidPriceFormat); err != nil {
		return empty, err
	}

	if r.Volume, err = decodeFloat(header, record, ColumnVolume, ErrInvalidVolumeFormat); err != nil {
		return empty, err
	}

	if r.Amount, err = decodeFloat(header, record, ColumnAmount, ErrInvalidVolumeFormat); err != nil {
		return empty, err
	}

	return r, nil
}

// ParseTime parses s with the first matching layout and truncates it to the date.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range TimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return types.Date(t), nil
		}
	}
	return time.Time{}, ErrInvalidTimeFormat
}

func decodeFloat(header Header, record []string, column string, invalid error) (float64, error) {
	s, err := header.get(record, column)
	if err != nil {
		return 0, err
	}

	if s == "" {
		return math.NaN(), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalid
	}
	return v, nil
}
