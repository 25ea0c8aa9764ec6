package csvsource

import (
	"encoding/csv"
	"io"

	"github.com/c9s/riskstat/pkg/types"
)

var _ KLineReader = (*CSVKLineReader)(nil)

// CSVKLineReader is a KLineReader that reads from a CSV file with a header row.
type CSVKLineReader struct {
	csv     *csv.Reader
	decoder CSVKLineDecoder
	header  Header
}

// MakeCSVKLineReader is a factory method type that creates a new CSVKLineReader.
type MakeCSVKLineReader func(csv *csv.Reader) *CSVKLineReader

// NewCSVKLineReader creates a new CSVKLineReader with the default decoder.
func NewCSVKLineReader(csv *csv.Reader) *CSVKLineReader {
	return NewCSVKLineReaderWithDecoder(csv, DefaultCSVKLineDecoder)
}

// NewCSVKLineReaderWithDecoder creates a new CSVKLineReader with the given decoder.
func NewCSVKLineReaderWithDecoder(csv *csv.Reader, decoder CSVKLineDecoder) *CSVKLineReader {
	// exports from pandas may carry an unnamed index column in front of the header
	csv.FieldsPerRecord = -1
	return &CSVKLineReader{
		csv:     csv,
		decoder: decoder,
	}
}

func (r *CSVKLineReader) readHeader() error {
	if r.header != nil {
		return nil
	}

	columns, err := r.csv.Read()
	if err != nil {
		return err
	}

	header, err := NewHeader(columns, KLineColumns...)
	if err != nil {
		return err
	}

	r.header = header
	return nil
}

// Read reads the next record from the underlying CSV data.
func (r *CSVKLineReader) Read() (types.Record, error) {
	var k types.Record

	if err := r.readHeader(); err != nil {
		return k, err
	}

	rec, err := r.csv.Read()
	if err != nil {
		return k, err
	}

	return r.decoder(rec, r.header)
}

// ReadAll reads all the records from the underlying CSV data.
func (r *CSVKLineReader) ReadAll() ([]types.Record, error) {
	var ks []types.Record
	for {
		k, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ks = append(ks, k)
	}

	return ks, nil
}
