package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/c9s/riskstat/pkg/data/tsv"
	"github.com/c9s/riskstat/pkg/riskmodel"
	"github.com/c9s/riskstat/pkg/statistics"
)

// Statistic names one column of the per-security feature table.
type Statistic string

const (
	StatVolatility  Statistic = "volatility"
	StatAlpha       Statistic = "alpha"
	StatBeta        Statistic = "beta"
	StatSharpe      Statistic = "sharpe"
	StatTotalReturn Statistic = "return"
)

var AllStatistics = []Statistic{StatVolatility, StatAlpha, StatBeta, StatSharpe, StatTotalReturn}

func ParseStatistic(s string) (Statistic, error) {
	for _, stat := range AllStatistics {
		if string(stat) == s {
			return stat, nil
		}
	}
	return "", fmt.Errorf(`unknown statistic "%s"`, s)
}

// Column is the header of the statistic in the output file.
func (s Statistic) Column() string {
	switch s {
	case StatVolatility:
		return "Volatility"
	case StatAlpha:
		return "Alpha"
	case StatBeta:
		return "Beta"
	case StatSharpe:
		return "SharpeRatio"
	case StatTotalReturn:
		return "TotalReturn"
	}
	return string(s)
}

// FileName is the output file name of the statistic for one year.
func (s Statistic) FileName(year int) string {
	switch s {
	case StatVolatility:
		return fmt.Sprintf("volatility_results_%d.csv", year)
	case StatAlpha:
		return fmt.Sprintf("alpha_coefficients_%d.csv", year)
	case StatBeta:
		return fmt.Sprintf("beta_coefficients_%d.csv", year)
	case StatSharpe:
		return fmt.Sprintf("sharpe_ratio_results_%d.csv", year)
	case StatTotalReturn:
		return fmt.Sprintf("total_return_results_%d.csv", year)
	}
	return fmt.Sprintf("%s_%d.csv", s, year)
}

func (s Statistic) Of(f statistics.Feature) statistics.Estimate {
	switch s {
	case StatVolatility:
		return f.Volatility
	case StatAlpha:
		return f.Alpha
	case StatBeta:
		return f.Beta
	case StatSharpe:
		return f.Sharpe
	case StatTotalReturn:
		return f.TotalReturn
	}
	return statistics.InsufficientData()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeRows(w *tsv.Writer, header []string, rows [][]string) error {
	if err := w.Write(header); err != nil {
		_ = w.Close()
		return err
	}

	if err := w.WriteAll(rows); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}

// WriteStatisticCSV writes the StockCode column and one statistic column.
// Invalid estimates are written as empty cells.
func WriteStatisticCSV(writer io.WriteCloser, stat Statistic, features []statistics.Feature) error {
	rows := make([][]string, len(features))
	for i, f := range features {
		rows[i] = []string{f.Code, stat.Of(f).String()}
	}
	return writeRows(tsv.NewCSVWriter(writer), []string{"StockCode", stat.Column()}, rows)
}

// WriteRiskAssessmentCSV writes the scored feature rows of every year.
func WriteRiskAssessmentCSV(writer io.WriteCloser, scored []riskmodel.ScoredFeature) error {
	header := []string{"StockCode", "Alpha", "Beta", "SharpeRatio", "Volatility", "Return", "Year", "RiskScore"}
	rows := make([][]string, len(scored))
	for i, s := range scored {
		rows[i] = []string{
			s.Code,
			s.Alpha.String(),
			s.Beta.String(),
			s.Sharpe.String(),
			s.Volatility.String(),
			s.TotalReturn.String(),
			strconv.Itoa(s.Year),
			s.Score.String(),
		}
	}
	return writeRows(tsv.NewCSVWriter(writer), header, rows)
}

// WriteYearlyLiquidityCSV writes the yearly liquidity indicators.
func WriteYearlyLiquidityCSV(writer io.WriteCloser, yearly []statistics.YearlyLiquidity) error {
	header := []string{"Year", "AverageVolume", "AverageAmount", "AverageTurnoverRate", "MarketLiquidity"}
	rows := make([][]string, len(yearly))
	for i, y := range yearly {
		rows[i] = []string{
			strconv.Itoa(y.Year),
			formatFloat(y.AverageVolume),
			formatFloat(y.AverageAmount),
			formatFloat(y.AverageTurnoverRate),
			formatFloat(y.MarketLiquidity),
		}
	}
	return writeRows(tsv.NewCSVWriter(writer), header, rows)
}

// WritePredictionsCSVFile creates path and writes the fitted total return of every feature row
// next to the observed one. Residual is empty when either side is missing.
func WritePredictionsCSVFile(path string, model *riskmodel.Model, features []statistics.Feature) error {
	w, err := tsv.NewCSVWriterFile(path)
	if err != nil {
		return err
	}

	header := []string{"StockCode", "Year", "TotalReturn", "PredictedReturn", "Residual"}
	rows := make([][]string, len(features))
	for i, f := range features {
		predicted := model.Predict(f)
		residual := statistics.InsufficientData()
		if predicted.Valid() && f.TotalReturn.Valid() {
			residual = statistics.OK(f.TotalReturn.Value - predicted.Value)
		}

		rows[i] = []string{
			f.Code,
			strconv.Itoa(f.Year),
			f.TotalReturn.String(),
			predicted.String(),
			residual.String(),
		}
	}
	return writeRows(w, header, rows)
}
