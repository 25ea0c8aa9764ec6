package xlsxsource

import (
	"errors"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/c9s/riskstat/pkg/types"
)

var log = logrus.WithField("component", "xlsxsource")

// ErrNoYields is returned when the sheet has no parsable (date, yield) row.
var ErrNoYields = errors.New("no yield rows found")

// ReadTreasuryYields reads a header-less sheet whose column A holds Excel serial dates
// and column B the yield in percent. The first sheet is used when sheet is empty.
// Rows that do not parse (titles, blank lines) are skipped.
func ReadTreasuryYields(path, sheet string) ([]types.YieldPoint, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open %s", path)
	}
	//nolint:errcheck // Read ops only so safe to ignore err return
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoYields
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read sheet %q", sheet)
	}

	var points []types.YieldPoint
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}

		serial, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			log.Debugf("skip row %d: date cell %q", i+1, row[0])
			continue
		}

		yield, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			log.Debugf("skip row %d: yield cell %q", i+1, row[1])
			continue
		}

		date, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "row %d", i+1)
		}

		points = append(points, types.YieldPoint{Date: types.Date(date), Yield: yield})
	}

	if len(points) == 0 {
		return nil, ErrNoYields
	}

	return points, nil
}
