package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/surveyq/engine"
)

// ============================================================================
// OUTPUT — TableData rendered as a terminal table, JSON, or CSV
// ============================================================================

const (
	formatText   = "text"
	formatJSON   = "json"
	formatPretty = "pretty"
	formatCSV    = "csv"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

func (a *app) render(td *engine.TableData) error {
	switch a.format {
	case formatJSON, formatPretty:
		return writeJSON(a.stdout, td, a.format)
	case formatCSV:
		return writeTableCSV(a.stdout, td)
	case formatText, "":
		_, err := io.WriteString(a.stdout, renderTable(td))
		return err
	}
	return fmt.Errorf("unknown output format %q (valid: text, json, pretty, csv)", a.format)
}

// renderTable lays out td with one space of padding around each cell and
// "|" between columns.
func renderTable(td *engine.TableData) string {
	var sb strings.Builder

	if td.Title != "" {
		sb.WriteString(titleStyle.Render(td.Title))
		sb.WriteString("\n")
	}
	if len(td.Rows) == 0 {
		sb.WriteString(mutedStyle.Render("(no rows)"))
		sb.WriteString("\n")
		return sb.String()
	}

	widths := make([]int, len(td.Columns))
	for i, c := range td.Columns {
		widths[i] = lipgloss.Width(c.Label)
	}
	for _, row := range td.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	// Width includes padding.
	for i := range widths {
		widths[i] += 2
	}

	sep := mutedStyle.Render("|")
	for i, c := range td.Columns {
		sb.WriteString(headerStyle.Width(widths[i]).Render(c.Label))
		if i < len(td.Columns)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")

	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range td.Rows {
		for i, c := range td.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			style := cellStyle.Width(widths[i])
			if c.Align == "right" {
				style = style.Align(lipgloss.Right)
			}
			sb.WriteString(style.Render(cell))
			if i < len(td.Columns)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	if td.Summary != nil {
		sb.WriteString(mutedStyle.Render(td.Summary.Label))
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeTableCSV(w io.Writer, td *engine.TableData) error {
	cw := csv.NewWriter(w)
	headers := make([]string, len(td.Columns))
	for i, c := range td.Columns {
		headers[i] = c.Label
	}
	if err := cw.Write(headers); err != nil {
		return err
	}
	if err := cw.WriteAll(td.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error

	if format == formatPretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
