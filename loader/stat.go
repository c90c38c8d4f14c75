package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kshedden/datareader"

	"github.com/spektr-org/surveyq/table"
)

// chunkRows is how many rows are pulled per datareader Read call.
const chunkRows = 1000

// readStata reads a Stata .dta file. Value labels replace coded integers
// and strL values are inlined, so labelled answers arrive as text.
func readStata(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	rdr, err := datareader.NewStataReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open Stata file: %w", err)
	}
	rdr.InsertCategoryLabels = true
	rdr.InsertStrls = true
	rdr.ConvertDates = true

	var sb seriesBuilder
	for {
		chunk, err := rdr.Read(chunkRows)
		if err != nil {
			return nil, fmt.Errorf("failed to read Stata rows: %w", err)
		}
		if chunk == nil {
			break
		}
		if err := sb.add(chunk); err != nil {
			return nil, err
		}
	}
	if sb.names == nil {
		sb.names = rdr.ColumnNames()
		sb.cols = make([][]table.Cell, len(sb.names))
	}
	return sb.table(), nil
}

// readSAS reads a SAS .sas7bdat file. Fixed-width strings are right-trimmed.
func readSAS(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	rdr, err := datareader.NewSAS7BDATReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open SAS file: %w", err)
	}
	rdr.TrimStrings = true
	rdr.ConvertDates = true

	var sb seriesBuilder
	for {
		chunk, err := rdr.Read(chunkRows)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read SAS rows: %w", err)
		}
		if err := sb.add(chunk); err != nil {
			return nil, err
		}
	}
	if sb.names == nil {
		sb.names = rdr.ColumnNames()
		sb.cols = make([][]table.Cell, len(sb.names))
	}
	return sb.table(), nil
}
