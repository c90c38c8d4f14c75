package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/surveyq/table"
)

func surveyTable(t *testing.T) *table.Table {
	t.Helper()
	b := table.NewBuilder([]string{"Age", "Country", "Languages", "Comment", "Empty"})
	countries := []string{"USA", "Canada", "UK", "USA", "Germany"}
	langs := []string{"Python;JavaScript", "Java;C++", "Python;R", "JavaScript", "Python;Java;C++"}
	for r := 0; r < 20; r++ {
		for i := 0; i < 5; i++ {
			b.Append([]table.Cell{
				table.Num(float64(20 + r + i)),
				table.Str(countries[i]),
				table.Str(langs[i]),
				table.Str("comment " + string(rune('a'+r)) + string(rune('a'+i))),
				table.Null(),
			})
		}
	}
	return b.Table()
}

func TestCatalogBuild(t *testing.T) {
	c := NewCatalog(surveyTable(t))
	require.Equal(t, 5, c.Len())
	assert.Equal(t, DefaultDelimiter, c.Delimiter())

	ids := make([]string, 0, c.Len())
	for _, q := range c.All() {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"Age", "Country", "Languages", "Comment", "Empty"}, ids)

	expect := map[string]Type{
		"Age":       TypeNumeric,
		"Country":   TypeSingleChoice,
		"Languages": TypeMultipleChoice,
		"Comment":   TypeText,
		"Empty":     TypeSingleChoice,
	}
	for id, want := range expect {
		q, ok := c.Get(id)
		require.True(t, ok, id)
		assert.Equal(t, want, q.Type(), id)
		assert.Equal(t, DisplayText(id), q.Text)
	}

	_, ok := c.Get("Missing")
	assert.False(t, ok)
}

func TestCatalogByTypeAndCounts(t *testing.T) {
	c := NewCatalog(surveyTable(t))

	sc := c.ByType(TypeSingleChoice)
	require.Len(t, sc, 2)
	assert.Equal(t, "Country", sc[0].ID)
	assert.Equal(t, "Empty", sc[1].ID)
	assert.Empty(t, c.ByType(Type("ordinal")))

	assert.Equal(t, map[Type]int{
		TypeNumeric:        1,
		TypeSingleChoice:   2,
		TypeMultipleChoice: 1,
		TypeText:           1,
	}, c.Counts())
}

func TestCatalogAllIsACopy(t *testing.T) {
	c := NewCatalog(surveyTable(t))
	all := c.All()
	all[0].ID = "changed"
	q, ok := c.Get("Age")
	require.True(t, ok)
	assert.Equal(t, "Age", q.ID)
}

func TestCatalogFromQuestionsIgnoresDuplicates(t *testing.T) {
	c := NewCatalogFromQuestions([]Question{
		{ID: "A", Variant: Numeric{}},
		{ID: "A", Variant: FreeText{}},
	}, "")
	require.Equal(t, 1, c.Len())
	q, _ := c.Get("A")
	assert.Equal(t, TypeNumeric, q.Type())
	assert.Equal(t, DefaultDelimiter, c.Delimiter())
}

func TestQuestionJSONCarriesVariant(t *testing.T) {
	sc := Question{ID: "Country", Text: "Country", Variant: SingleChoice{Options: []string{"UK", "USA"}}}
	out, err := json.Marshal(sc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"Country","text":"Country","type":"SC","options":["UK","USA"]}`, string(out))

	num := Question{ID: "Age", Text: "Age", Variant: Numeric{}}
	out, err = json.Marshal(num)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"Age","text":"Age","type":"NUMERIC"}`, string(out))

	out, err = json.Marshal([]Question{{ID: "Note", Text: "Note"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"Note","text":"Note","type":"TEXT"}]`, string(out))
}
