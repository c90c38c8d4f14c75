package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spektr-org/surveyq/table"
)

// WriteCSV writes the view as CSV: one header row with the column names,
// then one row per respondent. Null cells are written as empty fields and
// numbers in their shortest decimal form.
func WriteCSV(w io.Writer, view table.View) error {
	cw := csv.NewWriter(w)
	cols := view.Columns()

	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	rec := make([]string, len(cols))
	for i := 0; i < view.Len(); i++ {
		for j, c := range cols {
			rec[j] = view.Cell(i, c).String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
