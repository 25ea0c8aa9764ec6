package csvsource

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/c9s/riskstat/pkg/types"
)

// KLineReader is an interface for reading daily bars.
type KLineReader interface {
	Read() (types.Record, error)
	ReadAll() ([]types.Record, error)
}

// ReadKLinesFromCSV reads all the .csv files in a given directory or a single file into a slice of records.
// Wraps a default CSVKLineReader for convenience.
func ReadKLinesFromCSV(path string) ([]types.Record, error) {
	return ReadKLinesFromCSVWithDecoder(path, MakeCSVKLineReader(NewCSVKLineReader))
}

// ReadKLinesFromCSVWithDecoder permits using a custom CSVKLineReader.
func ReadKLinesFromCSVWithDecoder(path string, maker MakeCSVKLineReader) ([]types.Record, error) {
	var records []types.Record

	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".csv" {
			return nil
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		//nolint:errcheck // Read ops only so safe to ignore err return
		defer file.Close()
		reader := maker(csv.NewReader(file))
		newRecords, err := reader.ReadAll()
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}
		records = append(records, newRecords...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
