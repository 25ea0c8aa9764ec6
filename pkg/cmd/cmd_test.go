package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/c9s/riskstat/pkg/config"
	"github.com/c9s/riskstat/pkg/types"
)

const (
	fixtureYear   = 2018
	fixtureCodes  = 25
	fixtureDays   = 30
	fixtureWeight = 4.0
)

func fixtureCode(i int) string {
	return fmt.Sprintf("SHSE.6000%02d", i)
}

// writeFixture writes the constituent and k-line exports of one year into dir.
func writeFixture(t *testing.T, dir string, year int) {
	var constituents strings.Builder
	constituents.WriteString("code,name,weight\n")
	for i := 0; i < fixtureCodes; i++ {
		fmt.Fprintf(&constituents, "%s,stock %d,%v\n", fixtureCode(i), i, fixtureWeight)
	}

	var klines strings.Builder
	klines.WriteString("code,time,open,close,volume,amount\n")
	start := time.Date(year, 1, 2, 0, 0, 0, 0, time.UTC)
	for d := 0; d < fixtureDays; d++ {
		date := start.AddDate(0, 0, d).Format(types.DateLayout)
		for i := 0; i < fixtureCodes; i++ {
			price := 10 + float64(i) + 0.5*math.Sin(float64(d+i)) + 0.01*float64(d)
			volume := 1000 + 10*float64(d*(i+1)) + float64(year%10*d*d)
			fmt.Fprintf(&klines, "%s,%s,%.4f,%.4f,%v,%v\n", fixtureCode(i), date, price, price, volume, volume*price)
		}
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("hs300stocks_%d.csv", year)), []byte(constituents.String()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("hs300stocks_kdata_%d.csv", year)), []byte(klines.String()), 0o644))
}

// appendOutsider adds the bars of a code missing from the constituent file, its price grows
// a hundredfold every day.
func appendOutsider(t *testing.T, dir string, year int) {
	f, err := os.OpenFile(filepath.Join(dir, fmt.Sprintf("hs300stocks_kdata_%d.csv", year)), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	defer f.Close()

	start := time.Date(year, 1, 2, 0, 0, 0, 0, time.UTC)
	price := 1.0
	for d := 0; d < fixtureDays; d++ {
		date := start.AddDate(0, 0, d).Format(types.DateLayout)
		_, err := fmt.Fprintf(f, "%s,%s,%v,%v,1000,%v\n", outsiderCode, date, price, price, 1000*price)
		require.NoError(t, err)
		price *= 100
	}
}

const outsiderCode = "SZSE.300999"

func testConfig(t *testing.T) *config.Config {
	conf := config.Default()
	conf.DataDir = t.TempDir()
	conf.OutputDir = t.TempDir()
	conf.Years = config.YearRange{From: fixtureYear - 2, To: fixtureYear}
	writeFixture(t, conf.DataDir, fixtureYear-1)
	writeFixture(t, conf.DataDir, fixtureYear)
	return conf
}

func TestLoadYearlyKLines(t *testing.T) {
	conf := testConfig(t)

	var years []int
	err := loadYearlyKLines(conf, func(year int, records []types.Record) error {
		years = append(years, year)
		assert.Len(t, records, fixtureCodes*fixtureDays)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{fixtureYear - 1, fixtureYear}, years, "the missing year is skipped")
}

func TestPrepareOptimization(t *testing.T) {
	conf := testConfig(t)

	returns, w0, err := prepareOptimization(conf, fixtureYear)
	require.NoError(t, err)

	rows, cols := returns.Dims()
	assert.Equal(t, fixtureDays-1, rows)
	assert.Equal(t, fixtureCodes, cols)
	assert.InDelta(t, 1.0, floats.Sum(w0), 1e-12)
	assert.InDelta(t, 1.0/fixtureCodes, w0[0], 1e-12)

	conf.Optimizer.InitialWeights = config.InitialWeightsEqual
	_, w0, err = prepareOptimization(conf, fixtureYear)
	require.NoError(t, err)
	assert.Equal(t, 1.0/fixtureCodes, w0[fixtureCodes-1])

	_, _, err = prepareOptimization(conf, fixtureYear+1)
	assert.Error(t, err)
}

func TestStatsAndLiquidityCommands(t *testing.T) {
	conf := testConfig(t)
	viper.Set("data-dir", conf.DataDir)
	viper.Set("output-dir", conf.OutputDir)
	defer viper.Reset()

	RootCmd.SetArgs([]string{"stats", "--year", "2018", "--stat", "beta"})
	require.NoError(t, RootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(conf.OutputDir, "beta_coefficients_2018.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "StockCode,Beta", lines[0])
	assert.Len(t, lines, fixtureCodes+1)

	RootCmd.SetArgs([]string{"liquidity"})
	require.NoError(t, RootCmd.Execute())
	assert.FileExists(t, filepath.Join(conf.OutputDir, "market_liquidity_2014_2024.csv"))
	assert.FileExists(t, filepath.Join(conf.OutputDir, "market_liquidity_2014_2024.png"))
}

func TestLoadYearlyMembers(t *testing.T) {
	conf := testConfig(t)
	appendOutsider(t, conf.DataDir, fixtureYear)

	err := loadYearlyKLines(conf, func(year int, records []types.Record) error {
		if year == fixtureYear {
			assert.Len(t, records, (fixtureCodes+1)*fixtureDays)
		}
		return nil
	})
	require.NoError(t, err)

	var years []int
	err = loadYearlyMembers(conf, func(year int, records []types.Record) error {
		years = append(years, year)
		assert.Len(t, records, fixtureCodes*fixtureDays)
		for _, r := range records {
			assert.NotEqual(t, outsiderCode, r.Code)
			assert.True(t, r.HasWeight)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{fixtureYear - 1, fixtureYear}, years)
}

func TestAvgReturnCommand_ConstituentsOnly(t *testing.T) {
	conf := testConfig(t)
	appendOutsider(t, conf.DataDir, fixtureYear)

	configFile := filepath.Join(t.TempDir(), "riskstat.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(fmt.Sprintf(
		"years:\n  from: %d\n  to: %d\nwinsorize:\n  lower: 0\n  upper: 100\n", fixtureYear-1, fixtureYear)), 0o644))

	viper.Set("config", configFile)
	viper.Set("data-dir", conf.DataDir)
	viper.Set("output-dir", conf.OutputDir)
	defer viper.Reset()

	RootCmd.SetArgs([]string{"avgreturn"})
	require.NoError(t, RootCmd.Execute())

	f, err := excelize.OpenFile(filepath.Join(conf.OutputDir, fmt.Sprintf("average_daily_return_%d_%d.xlsx", fixtureYear-1, fixtureYear)))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1+2*(fixtureDays-1))
	assert.Equal(t, []string{"Date", "AverageDailyReturn"}, rows[0])

	// without the join every date of the last year would average in a 9900% return
	for _, row := range rows[1:] {
		v, err := strconv.ParseFloat(row[1], 64)
		require.NoError(t, err)
		assert.Less(t, math.Abs(v), 1.0, row[0])
	}
}

func TestTrainCommand(t *testing.T) {
	conf := testConfig(t)
	viper.Set("data-dir", conf.DataDir)
	viper.Set("output-dir", conf.OutputDir)
	defer viper.Reset()

	RootCmd.SetArgs([]string{"train", "--no-progress"})
	require.NoError(t, RootCmd.Execute())

	assert.FileExists(t, filepath.Join(conf.OutputDir, "trained_risk_assessment_results_2014_2024.csv"))

	data, err := os.ReadFile(filepath.Join(conf.OutputDir, "trained_risk_model_predictions_2014_2024.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "StockCode,Year,TotalReturn,PredictedReturn,Residual", lines[0])
	assert.Len(t, lines, 1+2*fixtureCodes)
}
