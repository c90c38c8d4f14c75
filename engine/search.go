package engine

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/spektr-org/surveyq/schema"
)

// ============================================================================
// SEARCH — Case-insensitive substring search over the catalog
// ============================================================================
// Question search: a question is a hit if the term occurs in its identifier,
// its display text, or any of its options.
// Option search: per question, the options containing the term.
// Both walk the catalog in order. An empty term yields nothing.
// ============================================================================

// folder holds a fresh case folder; cases.Caser is not safe for concurrent use.
type folder struct {
	c cases.Caser
}

func newFolder() *folder { return &folder{c: cases.Fold()} }

func (f *folder) fold(s string) string { return f.c.String(s) }

// contains reports whether folded term occurs in s.
func (f *folder) contains(s, term string) bool {
	return strings.Contains(f.fold(s), term)
}

// SearchQuestions returns the questions whose identifier, display text, or
// options contain term.
func SearchQuestions(c *schema.Catalog, term string) []schema.Question {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	f := newFolder()
	needle := f.fold(term)

	var out []schema.Question
	for _, q := range c.All() {
		if f.contains(q.ID, needle) || f.contains(q.Text, needle) {
			out = append(out, q)
			continue
		}
		for _, opt := range q.Options() {
			if f.contains(opt, needle) {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

// SearchOptions returns, for each question with a vocabulary, the options
// containing term. Questions without a match are omitted.
func SearchOptions(c *schema.Catalog, term string) []OptionMatch {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	f := newFolder()
	needle := f.fold(term)

	var out []OptionMatch
	for _, q := range c.All() {
		if !q.HasOptions() {
			continue
		}
		var matched []string
		for _, opt := range q.Options() {
			if f.contains(opt, needle) {
				matched = append(matched, opt)
			}
		}
		if len(matched) > 0 {
			out = append(out, OptionMatch{Question: q, Options: matched})
		}
	}
	return out
}

// Search runs both modes; each is skipped when its term is empty.
func Search(c *schema.Catalog, q Query) SearchResult {
	return SearchResult{
		Questions: SearchQuestions(c, q.Question),
		Options:   SearchOptions(c, q.Option),
	}
}
