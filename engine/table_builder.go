package engine

import (
	"fmt"
	"strings"

	"github.com/spektr-org/surveyq/schema"
)

// ============================================================================
// TABLE BUILDER — Produces TableData for distributions and question lists
// ============================================================================
// This is where ordering and top-N truncation happen; ComputeDistribution
// itself stays unordered.
// ============================================================================

// BuildDistributionTable renders a distribution as Answer / Count / Percentage
// rows, sorted and truncated per options.
func BuildDistributionTable(d *Distribution, opts ...Option) *TableData {
	cfg := applyOptions(opts)

	title := cfg.Title
	if title == "" {
		title = d.Question.ID
	}

	td := &TableData{
		Title: title,
		Columns: []Column{
			{Key: "answer", Label: "Answer", Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
			{Key: "percentage", Label: "Percentage", Type: "percent", Align: "right"},
		},
	}

	sorted := SortEntries(d.Entries, cfg.SortBy)
	shown := TopEntries(sorted, cfg.Limit)

	td.Rows = make([][]string, 0, len(shown))
	for _, e := range shown {
		td.Rows = append(td.Rows, []string{
			truncateLabel(e.Label, cfg.LabelWidth),
			FormatInt(e.Count),
			FormatPercent(e.Percentage),
		})
	}

	if remaining := len(sorted) - len(shown); remaining > 0 {
		td.Summary = &Summary{
			Label:  fmt.Sprintf("... and %d more answers", remaining),
			Values: map[string]string{"remaining": FormatInt(remaining)},
		}
	}
	return td
}

// BuildQuestionTable lists questions with their type and an option preview.
func BuildQuestionTable(questions []schema.Question, opts ...Option) *TableData {
	cfg := applyOptions(opts)

	td := &TableData{
		Title: cfg.Title,
		Columns: []Column{
			{Key: "id", Label: "Question", Type: "text", Align: "left"},
			{Key: "type", Label: "Type", Type: "text", Align: "left"},
			{Key: "text", Label: "Text", Type: "text", Align: "left"},
			{Key: "options", Label: "Options", Type: "text", Align: "left"},
		},
		Rows: make([][]string, 0, len(questions)),
	}
	if td.Title == "" {
		td.Title = fmt.Sprintf("Questions (%d)", len(questions))
	}

	for _, q := range questions {
		td.Rows = append(td.Rows, []string{
			q.ID,
			string(q.Type()),
			q.Text,
			optionPreview(q.Options(), cfg.OptionsShow),
		})
	}
	return td
}

// optionPreview lists small vocabularies inline and collapses large ones
// to a count.
func optionPreview(options []string, show int) string {
	switch {
	case len(options) == 0:
		return ""
	case len(options) > 2*show:
		return fmt.Sprintf("%d available", len(options))
	case len(options) > show:
		return strings.Join(options[:show], ", ") + "..."
	default:
		return strings.Join(options, ", ")
	}
}

func truncateLabel(s string, width int) string {
	if width <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
