package tsv

import (
	"encoding/csv"
	"io"
	"os"

	"go.uber.org/multierr"
)

// Writer is a delimited writer that owns its underlying file.
// It writes tab separated values unless created by one of the CSV constructors.
type Writer struct {
	file io.WriteCloser

	*csv.Writer
}

func NewWriterFile(filename string) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return NewWriter(f), nil
}

func NewCSVWriterFile(filename string) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return NewCSVWriter(f), nil
}

func AppendWriterFile(filename string) (*Writer, error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	return NewWriter(f), nil
}

func NewWriter(file io.WriteCloser) *Writer {
	return newWriter(file, '\t')
}

func NewCSVWriter(file io.WriteCloser) *Writer {
	return newWriter(file, ',')
}

func newWriter(file io.WriteCloser, comma rune) *Writer {
	w := csv.NewWriter(file)
	w.Comma = comma
	return &Writer{
		Writer: w,
		file:   file,
	}
}

// Close flushes the buffered rows and closes the file, reporting both failures.
func (w *Writer) Close() error {
	w.Writer.Flush()
	return multierr.Append(w.Writer.Error(), w.file.Close())
}
