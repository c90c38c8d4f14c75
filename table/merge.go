package table

// ============================================================================
// MERGE — Concatenate source tables into one respondent table
// ============================================================================
// Columns are the first-seen union across sources; rows keep source order and,
// within a source, their original order. Cells for columns a source lacks
// are Null, never defaulted.
// ============================================================================

// EmptyInputError reports that there was nothing to merge.
type EmptyInputError struct {
	Reason string
}

func (e *EmptyInputError) Error() string {
	if e.Reason == "" {
		return "no survey sources given"
	}
	return "no survey sources given: " + e.Reason
}

// Merge concatenates views into a new Table. Inputs are not modified.
func Merge(sources ...View) (*Table, error) {
	if len(sources) == 0 {
		return nil, &EmptyInputError{}
	}

	var columns []string
	seen := make(map[string]bool)
	total := 0
	for _, src := range sources {
		for _, c := range src.Columns() {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
		total += src.Len()
	}

	t := newTable(columns)
	t.rows = make([][]Cell, 0, total)
	for _, src := range sources {
		// Columns this source actually has, with their merged positions.
		type mapping struct {
			name string
			pos  int
		}
		var present []mapping
		for _, c := range src.Columns() {
			present = append(present, mapping{name: c, pos: t.index[c]})
		}
		for i := 0; i < src.Len(); i++ {
			row := make([]Cell, len(t.columns))
			for _, m := range present {
				row[m.pos] = src.Cell(i, m.name)
			}
			t.rows = append(t.rows, row)
		}
	}
	return t, nil
}
