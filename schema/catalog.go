package schema

import "github.com/spektr-org/surveyq/table"

// Catalog is the read-only, ordered collection of classified questions.
// Order is the column order of the merged table.
type Catalog struct {
	questions []Question
	byID      map[string]int
	delimiter string
}

// NewCatalog classifies every column of the view. Cost is rows × columns.
func NewCatalog(view table.View, opts ...ClassifyOption) *Catalog {
	o := applyClassifyOptions(opts)
	cols := view.Columns()
	c := &Catalog{
		questions: make([]Question, 0, len(cols)),
		byID:      make(map[string]int, len(cols)),
		delimiter: o.Delimiter,
	}
	for _, col := range cols {
		q := Question{
			ID:      col,
			Text:    DisplayText(col),
			Variant: classifyValues(table.ColumnValues(view, col), o),
		}
		c.byID[col] = len(c.questions)
		c.questions = append(c.questions, q)
	}
	return c
}

// NewCatalogFromQuestions builds a catalog from already-classified questions.
// Later duplicates of an ID are ignored.
func NewCatalogFromQuestions(questions []Question, delimiter string) *Catalog {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	c := &Catalog{
		byID:      make(map[string]int, len(questions)),
		delimiter: delimiter,
	}
	for _, q := range questions {
		if _, dup := c.byID[q.ID]; dup {
			continue
		}
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}
	return c
}

// Get looks up a question by identifier.
func (c *Catalog) Get(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// All returns every question in catalog order.
func (c *Catalog) All() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// ByType returns the questions of one type in catalog order.
func (c *Catalog) ByType(t Type) []Question {
	var out []Question
	for _, q := range c.questions {
		if q.Type() == t {
			out = append(out, q)
		}
	}
	return out
}

// Counts returns the number of questions per type. Types with no
// questions are omitted.
func (c *Catalog) Counts() map[Type]int {
	out := make(map[Type]int)
	for _, q := range c.questions {
		out[q.Type()]++
	}
	return out
}

func (c *Catalog) Len() int { return len(c.questions) }

// Delimiter is the multi-choice separator the catalog was classified with.
func (c *Catalog) Delimiter() string { return c.delimiter }
