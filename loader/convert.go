package loader

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kshedden/datareader"

	"github.com/spektr-org/surveyq/table"
)

// ============================================================================
// CONVERT — Raw source values to table cells
// ============================================================================
// A column is numeric when it has at least one non-blank value and every
// non-blank value parses as a finite number exactly as written. Blank and
// whitespace-only values are Null in every column.
// ============================================================================

// numericColumns flags the numeric columns of string records.
func numericColumns(width int, records [][]string) []bool {
	seen := make([]bool, width)
	numeric := make([]bool, width)
	for j := range numeric {
		numeric[j] = true
	}
	for _, rec := range records {
		for j := 0; j < width && j < len(rec); j++ {
			v := rec[j]
			if strings.TrimSpace(v) == "" {
				continue
			}
			seen[j] = true
			if numeric[j] {
				if _, ok := table.ParseNumber(v); !ok {
					numeric[j] = false
				}
			}
		}
	}
	for j := range numeric {
		numeric[j] = numeric[j] && seen[j]
	}
	return numeric
}

// textCell turns a raw string into Null or Text.
func textCell(v string) table.Cell {
	if strings.TrimSpace(v) == "" {
		return table.Null()
	}
	return table.Str(v)
}

// uniqueColumns returns the positions of the first occurrence of each
// header name. Later duplicates are dropped.
func uniqueColumns(header []string) []int {
	seen := make(map[string]bool, len(header))
	keep := make([]int, 0, len(header))
	for j, h := range header {
		if seen[h] {
			continue
		}
		seen[h] = true
		keep = append(keep, j)
	}
	return keep
}

// fromRecords builds a table from a header and string records.
func fromRecords(header []string, records [][]string) *table.Table {
	numeric := numericColumns(len(header), records)
	keep := uniqueColumns(header)

	names := make([]string, len(keep))
	for k, j := range keep {
		names[k] = header[j]
	}

	b := table.NewBuilder(names)
	for _, rec := range records {
		cells := make([]table.Cell, len(keep))
		for k, j := range keep {
			if j >= len(rec) {
				continue
			}
			v := rec[j]
			if numeric[j] {
				if f, ok := table.ParseNumber(v); ok {
					cells[k] = table.Num(f)
				}
				continue
			}
			cells[k] = textCell(v)
		}
		b.Append(cells)
	}
	return b.Table()
}

// ============================================================================
// SERIES — datareader column chunks
// ============================================================================

// seriesBuilder accumulates column-major chunks from a datareader reader.
type seriesBuilder struct {
	names []string
	cols  [][]table.Cell
}

// add appends one chunk. The first chunk fixes the column names.
func (sb *seriesBuilder) add(chunk []*datareader.Series) error {
	if sb.names == nil {
		sb.names = make([]string, len(chunk))
		sb.cols = make([][]table.Cell, len(chunk))
		for j, s := range chunk {
			sb.names[j] = s.Name
		}
	}
	if len(chunk) != len(sb.names) {
		return fmt.Errorf("chunk has %d columns, want %d", len(chunk), len(sb.names))
	}
	for j, s := range chunk {
		cells, err := seriesCells(s)
		if err != nil {
			return fmt.Errorf("column %q: %w", s.Name, err)
		}
		sb.cols[j] = append(sb.cols[j], cells...)
	}
	return nil
}

// table transposes the accumulated columns into rows.
func (sb *seriesBuilder) table() *table.Table {
	keep := uniqueColumns(sb.names)
	names := make([]string, len(keep))
	for k, j := range keep {
		names[k] = sb.names[j]
	}

	rows := 0
	for _, c := range sb.cols {
		if len(c) > rows {
			rows = len(c)
		}
	}

	b := table.NewBuilder(names)
	for i := 0; i < rows; i++ {
		cells := make([]table.Cell, len(keep))
		for k, j := range keep {
			if i < len(sb.cols[j]) {
				cells[k] = sb.cols[j][i]
			}
		}
		b.Append(cells)
	}
	return b.Table()
}

// seriesCells converts one datareader Series. Integer storage is upcast to
// float64, NaN (the SAS missing marker) becomes Null, dates render as
// ISO dates.
func seriesCells(s *datareader.Series) ([]table.Cell, error) {
	switch s.Data().(type) {
	case []float32, []int64, []int32, []int16, []int8:
		s = s.UpcastNumeric()
	}

	missing := s.Missing()
	isMissing := func(i int) bool { return missing != nil && i < len(missing) && missing[i] }

	switch data := s.Data().(type) {
	case []float64:
		out := make([]table.Cell, len(data))
		for i, f := range data {
			if isMissing(i) || math.IsNaN(f) || math.IsInf(f, 0) {
				continue
			}
			out[i] = table.Num(f)
		}
		return out, nil
	case []string:
		out := make([]table.Cell, len(data))
		for i, v := range data {
			if isMissing(i) {
				continue
			}
			out[i] = textCell(v)
		}
		return out, nil
	case []time.Time:
		out := make([]table.Cell, len(data))
		for i, v := range data {
			if isMissing(i) || v.IsZero() {
				continue
			}
			out[i] = table.Str(v.Format(time.DateOnly))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported storage %T", s.Data())
}
