package engine

import (
	"github.com/spektr-org/surveyq/schema"
	"github.com/spektr-org/surveyq/table"
)

// ============================================================================
// SURVEYQ ENGINE TYPES
// ============================================================================
// Everything here is derived and ephemeral: recomputed per query from a
// table.View and the schema.Catalog, never stored.
// ============================================================================

// ============================================================================
// SEARCH
// ============================================================================

// Query holds the two independent search terms. An empty term disables
// that mode.
type Query struct {
	Question string `json:"question,omitempty"`
	Option   string `json:"option,omitempty"`
}

// OptionMatch is a question together with the subset of its options that
// matched an option search.
type OptionMatch struct {
	Question schema.Question `json:"question"`
	Options  []string        `json:"options"`
}

// SearchResult combines both search modes, each in catalog order.
type SearchResult struct {
	Questions []schema.Question `json:"questions"`
	Options   []OptionMatch     `json:"options"`
}

// Empty reports whether neither mode produced a hit.
func (r SearchResult) Empty() bool {
	return len(r.Questions) == 0 && len(r.Options) == 0
}

// ============================================================================
// DISTRIBUTION
// ============================================================================

// Entry is the count and share of one answer option.
type Entry struct {
	Label      string     `json:"label"`
	Value      table.Cell `json:"-"`
	Count      int        `json:"count"`
	Percentage float64    `json:"percentage"` // fraction of valid responses, 0..1
}

// Distribution is the answer breakdown of one question over a view.
// Entries are in first-seen order; callers sort as they need.
type Distribution struct {
	Question       schema.Question `json:"question"`
	TotalResponses int             `json:"totalResponses"`
	ValidResponses int             `json:"validResponses"`
	ResponseRate   float64         `json:"responseRate"`
	Entries        []Entry         `json:"entries"`
}

// Lookup returns the entry for an option label.
func (d *Distribution) Lookup(label string) (Entry, bool) {
	for _, e := range d.Entries {
		if e.Label == label {
			return e, true
		}
	}
	return Entry{}, false
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "percent"
	Align string `json:"align"` // "left", "right"
}

// Summary provides a footer line for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// SurveySummary describes the loaded survey at a glance.
type SurveySummary struct {
	Respondents int         `json:"respondents"`
	Questions   int         `json:"questions"`
	ByType      []TypeCount `json:"byType"`
}

// TypeCount is the number of questions of one type.
type TypeCount struct {
	Type  schema.Type `json:"type"`
	Count int         `json:"count"`
}
