package table

import "fmt"

// Table is an ordered sequence of respondent rows over a fixed column list.
// Rows are stored column-aligned; a cell absent from a row is Null.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

func newTable(columns []string) *Table {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			continue
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t
}

// New builds a Table from column names and row maps.
// Keys missing from a row become Null; keys not in columns are rejected.
func New(columns []string, rows []map[string]Cell) (*Table, error) {
	t := newTable(columns)
	for i, r := range rows {
		row := make([]Cell, len(t.columns))
		for k, v := range r {
			j, ok := t.index[k]
			if !ok {
				return nil, fmt.Errorf("row %d: column %q not declared", i, k)
			}
			row[j] = v
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// Builder appends rows positionally, for loaders that already know
// the column order.
type Builder struct {
	t *Table
}

// NewBuilder starts a Table with the given columns. Duplicate names keep
// their first position.
func NewBuilder(columns []string) *Builder {
	return &Builder{t: newTable(columns)}
}

// Append adds one row. Short rows are padded with Null, extra cells dropped.
func (b *Builder) Append(cells []Cell) {
	row := make([]Cell, len(b.t.columns))
	copy(row, cells)
	b.t.rows = append(b.t.rows, row)
}

// Table returns the built table. The builder must not be reused.
func (b *Builder) Table() *Table {
	t := b.t
	b.t = nil
	return t
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) HasColumn(column string) bool {
	_, ok := t.index[column]
	return ok
}

func (t *Table) Cell(i int, column string) Cell {
	if i < 0 || i >= len(t.rows) {
		return Null()
	}
	j, ok := t.index[column]
	if !ok {
		return Null()
	}
	return t.rows[i][j]
}

// Row returns a copy of row i keyed by column name. Null cells are included.
func (t *Table) Row(i int) map[string]Cell {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	out := make(map[string]Cell, len(t.columns))
	for j, c := range t.columns {
		out[c] = t.rows[i][j]
	}
	return out
}

// Column returns every value of one column in row order.
func (t *Table) Column(column string) ([]Cell, bool) {
	if !t.HasColumn(column) {
		return nil, false
	}
	return ColumnValues(t, column), true
}
