package schema

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/surveyq/table"
)

// ============================================================================
// CLASSIFIER TESTS
// ============================================================================

func strs(vals ...string) []table.Cell {
	out := make([]table.Cell, len(vals))
	for i, v := range vals {
		out[i] = table.Str(v)
	}
	return out
}

func nums(vals ...float64) []table.Cell {
	out := make([]table.Cell, len(vals))
	for i, v := range vals {
		out[i] = table.Num(v)
	}
	return out
}

func repeat(cells []table.Cell, n int) []table.Cell {
	var out []table.Cell
	for i := 0; i < n; i++ {
		out = append(out, cells...)
	}
	return out
}

func TestClassifyNumeric(t *testing.T) {
	q := Classify("Age", nums(25, 30, 35, 28, 32))
	assert.Equal(t, TypeNumeric, q.Type())
	assert.Nil(t, q.Options())
	assert.False(t, q.HasOptions())

	withNulls := append(nums(1, 2), table.Null(), table.Num(3))
	assert.Equal(t, TypeNumeric, Classify("Score", withNulls).Type())
}

func TestClassifyNumericUsesNativeTyping(t *testing.T) {
	// Digits stored as text are not numeric answers.
	col := repeat(strs("1", "2"), 10)
	q := Classify("Rating", col)
	assert.Equal(t, TypeSingleChoice, q.Type())
	assert.Equal(t, []string{"1", "2"}, q.Options())
}

func TestClassifyMultipleChoice(t *testing.T) {
	col := strs("Python;JavaScript", "Java;C++", "Python;R", "JavaScript", "Python;Java;C++")
	q := Classify("Languages", col)
	require.Equal(t, TypeMultipleChoice, q.Type())

	want := []string{"C++", "Java", "JavaScript", "Python", "R"}
	if diff := cmp.Diff(want, q.Options()); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyMultipleChoiceTrimsTokens(t *testing.T) {
	col := append(strs("A ; B", " B;C "), table.Null())
	q := Classify("Tools", col)
	require.Equal(t, TypeMultipleChoice, q.Type())
	assert.Equal(t, []string{"A", "B", "C"}, q.Options())
}

func TestClassifyMultipleChoiceCustomDelimiter(t *testing.T) {
	col := strs("a|b", "b|c")
	q := Classify("Pipes", col, WithDelimiter("|"))
	require.Equal(t, TypeMultipleChoice, q.Type())
	assert.Equal(t, []string{"a", "b", "c"}, q.Options())

	// The default delimiter no longer triggers multi-choice.
	assert.NotEqual(t, TypeMultipleChoice, Classify("Semis", strs("a;b", "c;d"), WithDelimiter("|")).Type())
}

func TestClassifySingleChoice(t *testing.T) {
	col := repeat(strs("A", "B", "A", "B", "A"), 10)
	q := Classify("Choice", col)
	assert.Equal(t, TypeSingleChoice, q.Type())
	assert.Equal(t, []string{"A", "B"}, q.Options())
}

func TestClassifyCountryNeedsEnoughRows(t *testing.T) {
	country := strs("USA", "Canada", "UK", "USA", "Germany")

	// 4 distinct out of 5 answers is far above the 20% ratio.
	assert.Equal(t, TypeText, Classify("Country", country).Type())

	q := Classify("Country", repeat(country, 25))
	require.Equal(t, TypeSingleChoice, q.Type())
	assert.Equal(t, []string{"Canada", "Germany", "UK", "USA"}, q.Options())
}

func TestClassifyText(t *testing.T) {
	q := Classify("Comments", strs("Unique text 1", "Unique text 2", "Unique text 3", "Unique text 4"))
	assert.Equal(t, TypeText, q.Type())
	assert.Nil(t, q.Options())
}

func TestClassifyMixedKindsIsNotNumeric(t *testing.T) {
	col := repeat([]table.Cell{table.Num(1), table.Str("n/a")}, 10)
	q := Classify("Mixed", col)
	require.Equal(t, TypeSingleChoice, q.Type())
	assert.Equal(t, []string{"1", "n/a"}, q.Options())
}

func TestClassifyOptionCap(t *testing.T) {
	build := func(distinct int) []table.Cell {
		var col []table.Cell
		for r := 0; r < 20; r++ {
			for i := 0; i < distinct; i++ {
				col = append(col, table.Str(fmt.Sprintf("opt-%02d", i)))
			}
		}
		return col
	}
	assert.Equal(t, TypeSingleChoice, Classify("Q", build(49)).Type())
	assert.Equal(t, TypeText, Classify("Q", build(50)).Type(), "50 distinct is not below the cap")
	assert.Equal(t, TypeSingleChoice, Classify("Q", build(50), WithThresholds(0.2, 100)).Type())
}

func TestClassifyEmptyColumn(t *testing.T) {
	for _, col := range [][]table.Cell{nil, {table.Null(), table.Null()}} {
		q := Classify("Blank", col)
		assert.Equal(t, TypeSingleChoice, q.Type())
		assert.True(t, q.HasOptions())
		assert.NotNil(t, q.Options())
		assert.Empty(t, q.Options())
	}
}

func TestClassifyDeterministic(t *testing.T) {
	col := strs("x;y", "y;z", "z")
	first := Classify("Q", col)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify("Q", col))
	}
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitTokens(" a ;b", ";"))
	assert.Equal(t, []string{"solo"}, SplitTokens("solo", ";"))
	assert.Equal(t, []string{"a", ""}, SplitTokens("a;", ""))
}

// ============================================================================
// DISPLAY TEXT TESTS
// ============================================================================

func TestCleanColumnName(t *testing.T) {
	assert.Equal(t, "Test Column Name", CleanColumnName("Test_Column-Name!"))
	assert.Equal(t, "Test Multiple Spaces", CleanColumnName("Test   Multiple    Spaces"))
}

func TestDisplayText(t *testing.T) {
	cases := map[string]string{
		"Age":                   "Age?",
		"What is your age?":     "What is your age?",
		"Learn_Code (online)":   "Learn Code online?",
		"  OpSys--Personal use ": "OpSys Personal use?",
	}
	for in, want := range cases {
		assert.Equal(t, want, DisplayText(in), in)
	}
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{"sc": TypeSingleChoice, "MC": TypeMultipleChoice, "numeric": TypeNumeric, "Text": TypeText} {
		got, ok := ParseType(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseType("ordinal")
	assert.False(t, ok)
}
