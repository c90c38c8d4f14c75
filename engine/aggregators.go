package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spektr-org/surveyq/schema"
	"github.com/spektr-org/surveyq/table"
)

// ============================================================================
// AGGREGATORS — Answer counting and sorting via table.View
// ============================================================================
// Percentages are respondent coverage: count / valid responses. For
// multi-choice questions one respondent contributes to several options, so
// the shares need not sum to 1.
// ============================================================================

// ComputeDistribution counts the answers to question id across view.
// Pass a SubView to analyze a filtered subset.
func ComputeDistribution(view table.View, c *schema.Catalog, id string) (*Distribution, error) {
	q, err := lookup(view, c, id)
	if err != nil {
		return nil, err
	}

	d := &Distribution{
		Question:       q,
		TotalResponses: view.Len(),
	}

	if q.Type() == schema.TypeMultipleChoice {
		d.Entries = countTokens(view, id, c.Delimiter(), &d.ValidResponses)
	} else {
		d.Entries = countValues(view, id, &d.ValidResponses)
	}

	if d.TotalResponses > 0 {
		d.ResponseRate = float64(d.ValidResponses) / float64(d.TotalResponses)
	}
	if d.ValidResponses > 0 {
		for i := range d.Entries {
			d.Entries[i].Percentage = float64(d.Entries[i].Count) / float64(d.ValidResponses)
		}
	}
	return d, nil
}

// countTokens explodes each answer into its options. An option repeated
// inside one answer still counts once for that respondent.
func countTokens(view table.View, id, delimiter string, valid *int) []Entry {
	pos := make(map[string]int)
	var entries []Entry

	for i := 0; i < view.Len(); i++ {
		cell := view.Cell(i, id)
		if cell.IsNull() {
			continue
		}
		*valid++

		seen := make(map[string]bool)
		for _, tok := range schema.SplitTokens(cell.String(), delimiter) {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			j, ok := pos[tok]
			if !ok {
				j = len(entries)
				pos[tok] = j
				entries = append(entries, Entry{Label: tok, Value: table.Str(tok)})
			}
			entries[j].Count++
		}
	}
	return entries
}

// countValues counts each distinct answer by its label, so a number and a
// text cell that print the same land in one entry. Value keeps the first
// cell seen for that label.
func countValues(view table.View, id string, valid *int) []Entry {
	pos := make(map[string]int)
	var entries []Entry

	for i := 0; i < view.Len(); i++ {
		cell := view.Cell(i, id)
		if cell.IsNull() {
			continue
		}
		*valid++

		label := cell.String()
		j, ok := pos[label]
		if !ok {
			j = len(entries)
			pos[label] = j
			entries = append(entries, Entry{Label: label, Value: cell})
		}
		entries[j].Count++
	}
	return entries
}

// ============================================================================
// SORTING
// ============================================================================

const (
	SortCountDesc = "count_desc"
	SortCountAsc  = "count_asc"
	SortLabelAsc  = "label_asc"
)

// SortEntries returns a sorted copy of entries. Unknown modes fall back to
// count_desc. Ties are broken by label so output is stable.
func SortEntries(entries []Entry, sortBy string) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	byLabel := func(i, j int) bool { return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label) }

	switch sortBy {
	case SortCountAsc:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count < out[j].Count
			}
			return byLabel(i, j)
		})
	case SortLabelAsc:
		sort.SliceStable(out, byLabel)
	default:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return byLabel(i, j)
		})
	}
	return out
}

// TopEntries keeps the first n entries. n <= 0 keeps all.
func TopEntries(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatPercent renders a 0..1 share as "40.0%".
func FormatPercent(share float64) string {
	return fmt.Sprintf("%.1f%%", RoundTo2(share*100))
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
