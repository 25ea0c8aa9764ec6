package optimizer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"go.uber.org/multierr"

	"github.com/c9s/riskstat/pkg/data/tsv"
)

// FormatResultsTsv writes one row per trial: the parameter columns sorted by label, then the trial value.
// The writer is closed on return, including the error paths.
func FormatResultsTsv(writer io.WriteCloser, labelPaths map[string]string, results []*HyperparameterOptimizeTrialResult) error {
	return writeResults(tsv.NewWriter(writer), labelPaths, results)
}

// FormatResultsTsvFile creates filename and writes the trial rows into it.
func FormatResultsTsvFile(filename string, labelPaths map[string]string, results []*HyperparameterOptimizeTrialResult) error {
	w, err := tsv.NewWriterFile(filename)
	if err != nil {
		return err
	}
	return writeResults(w, labelPaths, results)
}

func writeResults(w *tsv.Writer, labelPaths map[string]string, results []*HyperparameterOptimizeTrialResult) error {
	err := writeTrials(w, labelPaths, results)
	return multierr.Append(err, w.Close())
}

func writeTrials(w *tsv.Writer, labelPaths map[string]string, results []*HyperparameterOptimizeTrialResult) error {
	headers := make([]string, 0, len(labelPaths)+1)
	for label := range labelPaths {
		headers = append(headers, label)
	}
	sort.Strings(headers)

	rows := make([][]interface{}, len(results))
	for ri, result := range results {
		row := make([]interface{}, 0, len(headers)+1)
		for _, columnKey := range headers {
			val, ok := result.Parameters[columnKey]
			if !ok {
				return fmt.Errorf(`missing parameter "%s" from trial result (%v)`, columnKey, result.Parameters)
			}
			row = append(row, val)
		}
		rows[ri] = append(row, result.Value)
	}

	if err := w.Write(append(headers, "value")); err != nil {
		return err
	}

	for _, row := range rows {
		var cells []string
		for _, o := range row {
			cell, err := castCellValue(o)
			if err != nil {
				return err
			}
			cells = append(cells, cell)
		}

		if err := w.Write(cells); err != nil {
			return err
		}
	}
	return nil
}

var historyHeader = []string{"time", "study", "objective", "trials", "bestValue"}

// AppendHistoryTsv appends one summary row of the study to filename,
// the header is written when the file is new.
func AppendHistoryTsv(filename string, now time.Time, report *HyperparameterOptimizeReport) error {
	_, statErr := os.Stat(filename)

	w, err := tsv.AppendWriterFile(filename)
	if err != nil {
		return err
	}

	if os.IsNotExist(statErr) {
		if err := w.Write(historyHeader); err != nil {
			return multierr.Append(err, w.Close())
		}
	}

	best := ""
	if report.Best != nil {
		best = strconv.FormatFloat(report.Best.Value, 'f', -1, 64)
	}

	err = w.Write([]string{
		now.Format(time.RFC3339),
		report.Name,
		report.Objective,
		strconv.Itoa(len(report.Trials)),
		best,
	})
	return multierr.Append(err, w.Close())
}

func castCellValue(a interface{}) (string, error) {
	switch tv := a.(type) {
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64), nil
	case int64:
		return strconv.FormatInt(tv, 10), nil
	case int32:
		return strconv.FormatInt(int64(tv), 10), nil
	case int:
		return strconv.Itoa(tv), nil
	case bool:
		return strconv.FormatBool(tv), nil
	case string:
		return tv, nil
	case []byte:
		return string(tv), nil
	default:
		return "", fmt.Errorf("unsupported object type: %T value: %v", tv, tv)
	}
}
