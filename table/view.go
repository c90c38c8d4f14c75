package table

// ============================================================================
// VIEW — Read-only indexed access to respondent rows
// ============================================================================
// Implementations:
//   Table:    owns its rows (produced by loaders and Merge)
//   SubView:  filtered subset (indices into a parent, zero-copy)
//
// Query code reads through View so a filtered subset can be analyzed exactly
// like the full table.
// ============================================================================

// View provides indexed access to a respondent table.
type View interface {
	Len() int
	Columns() []string
	HasColumn(column string) bool
	// Cell returns Null for unknown columns or out-of-range rows.
	Cell(row int, column string) Cell
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent View.
// It holds indices into the parent, never a copy of the rows.
type SubView struct {
	parent  View
	indices []int
}

// Select returns a SubView over the given parent row indices.
// Indices are kept in the order given.
func Select(parent View, indices []int) *SubView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int                     { return len(v.indices) }
func (v *SubView) Columns() []string            { return v.parent.Columns() }
func (v *SubView) HasColumn(column string) bool { return v.parent.HasColumn(column) }

func (v *SubView) Cell(i int, column string) Cell {
	if i < 0 || i >= len(v.indices) {
		return Null()
	}
	return v.parent.Cell(v.indices[i], column)
}

// Indices returns the parent row indices backing this view.
func (v *SubView) Indices() []int {
	out := make([]int, len(v.indices))
	copy(out, v.indices)
	return out
}

// ColumnValues collects one column of a view in row order.
func ColumnValues(v View, column string) []Cell {
	n := v.Len()
	out := make([]Cell, n)
	for i := 0; i < n; i++ {
		out[i] = v.Cell(i, column)
	}
	return out
}

// Materialize copies a view into a standalone Table.
func Materialize(v View) *Table {
	cols := v.Columns()
	t := newTable(cols)
	for i := 0; i < v.Len(); i++ {
		row := make([]Cell, len(cols))
		for j, c := range cols {
			row[j] = v.Cell(i, c)
		}
		t.rows = append(t.rows, row)
	}
	return t
}
