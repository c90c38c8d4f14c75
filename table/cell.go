package table

import (
	"math"
	"strconv"
)

// ============================================================================
// CELL — One respondent answer
// ============================================================================
// A cell is exactly one of: Null (no answer), Number, or Text.
// Loaders decide the kind from the source's native column typing; nothing
// downstream re-sniffs strings to guess a kind.
// ============================================================================

// Kind tags the variant held by a Cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// Cell is a small sum type: Null | Number | Text.
// The zero value is Null.
type Cell struct {
	kind Kind
	num  float64
	text string
}

// Null returns an absent answer.
func Null() Cell { return Cell{} }

// Num returns a numeric answer.
func Num(f float64) Cell { return Cell{kind: KindNumber, num: f} }

// Str returns a textual answer.
func Str(s string) Cell { return Cell{kind: KindText, text: s} }

func (c Cell) Kind() Kind     { return c.kind }
func (c Cell) IsNull() bool   { return c.kind == KindNull }
func (c Cell) IsNumber() bool { return c.kind == KindNumber }
func (c Cell) IsText() bool   { return c.kind == KindText }

// Number returns the numeric payload and whether the cell holds one.
func (c Cell) Number() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// Text returns the textual payload and whether the cell holds one.
func (c Cell) Text() (string, bool) {
	return c.text, c.kind == KindText
}

// String coerces the cell to text. Numbers use the shortest decimal form
// that round-trips ("25", "2.5"); Null renders as "".
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return FormatNumber(c.num)
	case KindText:
		return c.text
	default:
		return ""
	}
}

// Equal reports kind-sensitive equality. Null never equals anything.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNumber:
		return c.num == o.num
	case KindText:
		return c.text == o.text
	default:
		return false
	}
}

// Key returns a comparable map key that keeps Number(1) and Text("1") apart.
func (c Cell) Key() CellKey {
	return CellKey{kind: c.kind, num: c.num, text: c.text}
}

// CellKey is the comparable form of a Cell.
type CellKey struct {
	kind Kind
	num  float64
	text string
}

// FormatNumber renders a float without exponent noise for integral values.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ParseNumber parses a finite decimal number. NaN and infinities are rejected
// so answers like "Infinity" stay textual.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
