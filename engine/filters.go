package engine

import (
	"strings"

	"github.com/spektr-org/surveyq/schema"
	"github.com/spektr-org/surveyq/table"
)

// ============================================================================
// FILTERS — Respondent subsets keyed on one question
// ============================================================================
// Single pass over the view. Returns a SubView (index list into the parent),
// so the source is never modified and every column stays available.
//
// Matching depends on the question type:
//   MultipleChoice: split + trim the answer; match if any token is a target
//   everything else: the raw cell equals a target (number to number,
//                    text to text)
// Null answers never match.
// ============================================================================

// Subset returns the rows of view whose answer to question id matches any
// of targets. Row order is preserved.
func Subset(view table.View, c *schema.Catalog, id string, targets []string) (*table.SubView, error) {
	q, err := lookup(view, c, id)
	if err != nil {
		return nil, err
	}

	match := cellMatcher(q, c.Delimiter(), targets)

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if match(view.Cell(i, id)) {
			indices = append(indices, i)
		}
	}
	return table.Select(view, indices), nil
}

// lookup resolves a question that must exist in both catalog and view.
func lookup(view table.View, c *schema.Catalog, id string) (schema.Question, error) {
	q, ok := c.Get(id)
	if !ok || !view.HasColumn(id) {
		return schema.Question{}, &UnknownQuestionError{ID: id}
	}
	return q, nil
}

func cellMatcher(q schema.Question, delimiter string, targets []string) func(table.Cell) bool {
	if q.Type() == schema.TypeMultipleChoice {
		set := toSet(targets)
		return func(c table.Cell) bool {
			if c.IsNull() {
				return false
			}
			for _, tok := range schema.SplitTokens(c.String(), delimiter) {
				if set[tok] {
					return true
				}
			}
			return false
		}
	}

	wanted := make([]table.Cell, 0, 2*len(targets))
	for _, t := range targets {
		wanted = append(wanted, table.Str(t))
		if f, ok := table.ParseNumber(strings.TrimSpace(t)); ok {
			wanted = append(wanted, table.Num(f))
		}
	}
	return func(c table.Cell) bool {
		for _, w := range wanted {
			if c.Equal(w) {
				return true
			}
		}
		return false
	}
}

// toSet converts a string slice to a lookup set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
