package report

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"github.com/c9s/riskstat/pkg/portfolio"
	"github.com/c9s/riskstat/pkg/statistics"
	"github.com/c9s/riskstat/pkg/types"
)

const (
	SheetOptimizedWeights  = "Optimized Weights"
	SheetSummary           = "Summary"
	SheetCumulativeReturns = "Cumulative Returns"
	SheetDrawdown          = "Drawdown"

	defaultSheet = "Sheet1"
)

// sheet collects the rows of one worksheet before they are written.
type sheet struct {
	name string
	rows [][]interface{}
}

func (s *sheet) append(row ...interface{}) {
	s.rows = append(s.rows, row)
}

// writeWorkbook saves the sheets, in order, as a new workbook at path.
// The first sheet replaces the default one.
func writeWorkbook(path string, sheets ...*sheet) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	for i, s := range sheets {
		switch {
		case i == 0 && s.name != defaultSheet:
			if err := f.SetSheetName(defaultSheet, s.name); err != nil {
				return err
			}
		case i > 0:
			if _, err := f.NewSheet(s.name); err != nil {
				return err
			}
		}

		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}

			row := row
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return errors.Wrapf(err, "unable to write row %d of sheet %s", r+1, s.name)
			}
		}
	}

	return errors.Wrapf(f.SaveAs(path), "unable to save workbook %s", path)
}

func estimateCell(e statistics.Estimate) interface{} {
	if v, ok := e.Float64(); ok {
		return v
	}
	return nil
}

// WritePortfolioWorkbook saves the optimized weights, the summary metrics
// and the two date indexed series in four sheets.
func WritePortfolioWorkbook(path string, result *portfolio.Result) error {
	weights := &sheet{name: SheetOptimizedWeights}
	weights.append("Stock", "Weight")
	for i, code := range result.Codes {
		weights.append(code, result.Weights[i])
	}

	summary := &sheet{name: SheetSummary}
	summary.append("Expected Return", "Volatility", "Max Drawdown", "Sharpe Ratio")
	summary.append(result.ExpectedReturn, result.Volatility, result.MaxDrawdown, estimateCell(result.Sharpe))

	cum := &sheet{name: SheetCumulativeReturns}
	cum.append("Date", "Cumulative Returns")
	dd := &sheet{name: SheetDrawdown}
	dd.append("Date", "Drawdown")
	for i, d := range result.Dates {
		date := d.Format(types.DateLayout)
		cum.append(date, result.CumulativeReturns[i])
		dd.append(date, result.Drawdown[i])
	}

	return writeWorkbook(path, weights, summary, cum, dd)
}

// WriteDailyLiquidityWorkbook saves the daily liquidity indicators.
func WriteDailyLiquidityWorkbook(path string, daily []statistics.DailyLiquidity) error {
	s := &sheet{name: defaultSheet}
	s.append("Date", "Volume", "Amount", "TurnoverRate", "MarketLiquidity")
	for _, d := range daily {
		s.append(d.Date.Format(types.DateLayout), d.Volume, d.Amount, d.TurnoverRate, d.MarketLiquidity)
	}
	return writeWorkbook(path, s)
}

// WriteAverageReturnWorkbook saves the winsorized average daily returns.
func WriteAverageReturnWorkbook(path string, returns []statistics.AverageReturn) error {
	s := &sheet{name: defaultSheet}
	s.append("Date", "AverageDailyReturn")
	for _, r := range returns {
		s.append(r.Date.Format(types.DateLayout), r.AverageDailyReturn)
	}
	return writeWorkbook(path, s)
}
