package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spektr-org/surveyq/table"
)

// readCSVFile parses a delimited text file with a header row. Rows may be
// ragged: short rows are padded with Null, extra fields are dropped.
func readCSVFile(path string, comma rune) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceNotFoundError{Path: path, Err: err}
	}
	defer f.Close()
	return readCSV(f, comma)
}

func readCSV(r io.Reader, comma rune) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("file appears to be empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	return fromRecords(header, records), nil
}
