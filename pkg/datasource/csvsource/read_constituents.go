package csvsource

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/riskstat/pkg/types"
)

// ReadConstituents decodes an index membership export, only the code and weight columns are used.
func ReadConstituents(r io.Reader) ([]types.Constituent, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	columns, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	header, err := NewHeader(columns, ConstituentColumns...)
	if err != nil {
		return nil, err
	}

	var constituents []types.Constituent
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		code, err := header.get(rec, ColumnCode)
		if err != nil {
			return nil, err
		}

		ws, err := header.get(rec, ColumnWeight)
		if err != nil {
			return nil, err
		}

		// an empty cell is a missing weight, kept as NaN so the membership survives
		weight := math.NaN()
		if ws = strings.TrimSpace(ws); ws != "" {
			if weight, err = strconv.ParseFloat(ws, 64); err != nil {
				return nil, ErrInvalidWeightFormat
			}
		}

		constituents = append(constituents, types.Constituent{Code: code, Weight: weight})
	}

	return constituents, nil
}

// ReadConstituentsFromFile opens path and decodes it with ReadConstituents.
func ReadConstituentsFromFile(path string) ([]types.Constituent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Read ops only so safe to ignore err return
	defer f.Close()

	constituents, err := ReadConstituents(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read constituents %s", path)
	}
	return constituents, nil
}
