package csvsource

import (
	"encoding/csv"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/riskstat/pkg/types"
)

const header = "code,time,open,close,volume,amount"

var assertRecordEq = func(t *testing.T, exp, act types.Record) {
	assert.Equal(t, exp.Code, act.Code)
	assert.Equal(t, exp.Time, act.Time)
	assert.Equal(t, exp.Close, act.Close)
	assert.Equal(t, exp.Volume, act.Volume)
	assert.Equal(t, exp.Amount, act.Amount)
}

func TestCSVKLineReader_ReadWithDefaultDecoder(t *testing.T) {
	tests := []struct {
		name string
		give string
		want types.Record
		err  error
	}{
		{
			name: "Read date only",
			give: "SHSE.600000,2018-01-02,12.5,12.72,39470000,502000000",
			want: types.Record{
				Code:   "SHSE.600000",
				Time:   time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC),
				Close:  12.72,
				Volume: 39470000,
				Amount: 502000000,
			},
		},
		{
			name: "Read date time",
			give: "SZSE.000001,2018-01-03 00:00:00,13.3,13.1,2000,26200",
			want: types.Record{
				Code:   "SZSE.000001",
				Time:   time.Date(2018, 1, 3, 0, 0, 0, 0, time.UTC),
				Close:  13.1,
				Volume: 2000,
				Amount: 26200,
			},
		},
		{
			name: "Not enough columns",
			give: "SZSE.000001,2018-01-03,13.3",
			err:  ErrNotEnoughColumns,
		},
		{
			name: "Invalid time format",
			give: "SZSE.000001,03-01-2018,13.3,13.1,2000,26200",
			err:  ErrInvalidTimeFormat,
		},
		{
			name: "Invalid price format",
			give: "SZSE.000001,2018-01-03,13.3,thirteen,2000,26200",
			err:  ErrInvalidPriceFormat,
		},
		{
			name: "Invalid volume format",
			give: "SZSE.000001,2018-01-03,13.3,13.1,vol,26200",
			err:  ErrInvalidVolumeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewCSVKLineReader(csv.NewReader(strings.NewReader(header + "\n" + tt.give)))
			record, err := reader.Read()
			assert.Equal(t, tt.err, err)
			assertRecordEq(t, tt.want, record)
		})
	}
}

func TestCSVKLineReader_EmptyCloseIsNaN(t *testing.T) {
	reader := NewCSVKLineReader(csv.NewReader(strings.NewReader(header + "\nSHSE.600000,2018-01-02,12.5,,0,0")))
	record, err := reader.Read()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(record.Close))
}

func TestCSVKLineReader_MissingColumn(t *testing.T) {
	reader := NewCSVKLineReader(csv.NewReader(strings.NewReader("code,time,close\nSHSE.600000,2018-01-02,12.5")))
	_, err := reader.Read()
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestCSVKLineReader_ReadAllWithIndexColumn(t *testing.T) {
	records := []string{
		",code,time,close,volume,amount",
		"0,SHSE.600000,2018-01-02,12.72,100,1272",
		"1,SHSE.600000,2018-01-03,12.66,200,2532",
	}
	reader := NewCSVKLineReader(csv.NewReader(strings.NewReader(strings.Join(records, "\n"))))
	klines, err := reader.ReadAll()
	assert.NoError(t, err)
	assert.Len(t, klines, 2)
	assert.Equal(t, 12.66, klines[1].Close)
}

func TestReadConstituents(t *testing.T) {
	body := "code,name,weight\nSHSE.600000,PF Bank,0.65\nSZSE.000001,PA Bank,0.92\n"
	constituents, err := ReadConstituents(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, []types.Constituent{
		{Code: "SHSE.600000", Weight: 0.65},
		{Code: "SZSE.000001", Weight: 0.92},
	}, constituents)

	_, err = ReadConstituents(strings.NewReader("code,weight\nSHSE.600000,heavy\n"))
	assert.Equal(t, ErrInvalidWeightFormat, err)

	_, err = ReadConstituents(strings.NewReader("code,name\nSHSE.600000,PF Bank\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadConstituents_EmptyWeight(t *testing.T) {
	body := "code,name,weight\nSHSE.600000,PF Bank,\nSZSE.000001,PA Bank, \nSHSE.600519,Moutai,1.2\n"
	constituents, err := ReadConstituents(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, constituents, 3)

	assert.Equal(t, "SHSE.600000", constituents[0].Code)
	assert.True(t, math.IsNaN(constituents[0].Weight))
	assert.True(t, math.IsNaN(constituents[1].Weight))
	assert.Equal(t, 1.2, constituents[2].Weight)
}
