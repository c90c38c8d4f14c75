package schema

import (
	"encoding/json"
	"strings"
)

// ============================================================================
// QUESTION — Describes one survey column for the catalog and query engine
// ============================================================================
// Built once by the classifier from the merged table; immutable afterwards.
// The option vocabulary only exists on the two choice variants, so it lives
// on those variant types rather than as a nullable field on Question.
// ============================================================================

// Type is the semantic type inferred for a question.
type Type string

const (
	TypeSingleChoice   Type = "SC"
	TypeMultipleChoice Type = "MC"
	TypeNumeric        Type = "NUMERIC"
	TypeText           Type = "TEXT"
)

// Types lists every question type in display order.
var Types = []Type{TypeSingleChoice, TypeMultipleChoice, TypeNumeric, TypeText}

// ParseType accepts the short codes ("SC", "mc") and the long names
// ("single-choice", "numeric").
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sc", "single", "single-choice", "single_choice":
		return TypeSingleChoice, true
	case "mc", "multi", "multiple", "multiple-choice", "multiple_choice":
		return TypeMultipleChoice, true
	case "numeric", "number":
		return TypeNumeric, true
	case "text", "free-text":
		return TypeText, true
	}
	return "", false
}

// Label returns a human-readable type name.
func (t Type) Label() string {
	switch t {
	case TypeSingleChoice:
		return "Single Choice"
	case TypeMultipleChoice:
		return "Multiple Choice"
	case TypeNumeric:
		return "Numeric"
	case TypeText:
		return "Text"
	}
	return string(t)
}

// Variant is the per-type payload of a Question. The set of variants is
// closed: SingleChoice, MultipleChoice, Numeric, FreeText.
type Variant interface {
	Type() Type
	isVariant()
}

// SingleChoice is a question answered with one option from a small vocabulary.
type SingleChoice struct {
	Options []string `json:"options"`
}

// MultipleChoice is a question whose answers pack several options into one
// delimited cell.
type MultipleChoice struct {
	Options []string `json:"options"`
}

// Numeric is a question whose every answer is a number.
type Numeric struct{}

// FreeText is an open-ended question.
type FreeText struct{}

func (SingleChoice) Type() Type   { return TypeSingleChoice }
func (MultipleChoice) Type() Type { return TypeMultipleChoice }
func (Numeric) Type() Type        { return TypeNumeric }
func (FreeText) Type() Type       { return TypeText }

func (SingleChoice) isVariant()   {}
func (MultipleChoice) isVariant() {}
func (Numeric) isVariant()        {}
func (FreeText) isVariant()       {}

// Question is one classified survey column.
type Question struct {
	ID      string  `json:"id"`   // column name
	Text    string  `json:"text"` // derived display text
	Variant Variant `json:"-"`
}

// Type returns the question's inferred type.
func (q Question) Type() Type {
	if q.Variant == nil {
		return TypeText
	}
	return q.Variant.Type()
}

// Options returns the option vocabulary, or nil for Numeric and FreeText.
// The returned slice must not be modified.
func (q Question) Options() []string {
	switch v := q.Variant.(type) {
	case SingleChoice:
		return v.Options
	case MultipleChoice:
		return v.Options
	}
	return nil
}

// HasOptions reports whether the question carries an option vocabulary.
func (q Question) HasOptions() bool {
	switch q.Variant.(type) {
	case SingleChoice, MultipleChoice:
		return true
	}
	return false
}

// MarshalJSON flattens the variant into "type" and, for choice questions,
// "options".
func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string   `json:"id"`
		Text    string   `json:"text"`
		Type    Type     `json:"type"`
		Options []string `json:"options,omitempty"`
	}{q.ID, q.Text, q.Type(), q.Options()})
}

func (q Question) String() string {
	return q.ID + ": " + q.Text + " (" + string(q.Type()) + ")"
}
