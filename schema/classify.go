package schema

import (
	"sort"
	"strings"

	"github.com/spektr-org/surveyq/table"
)

// ============================================================================
// CLASSIFIER — Heuristic question-type inference
// ============================================================================
// Runs over the full post-merge column. Rules, first match wins:
//   0. No non-null values          → SingleChoice, empty vocabulary
//   1. Every non-null cell numeric → Numeric
//   2. Any value contains the delimiter → MultipleChoice (split tokens)
//   3. distinct/non-null < ratio AND distinct < max → SingleChoice
//   4. otherwise                   → FreeText
//
// Total and deterministic: the same column always yields the same Question.
// ============================================================================

// DefaultDelimiter separates selections packed into a multi-choice cell.
const DefaultDelimiter = ";"

// ClassifyOptions controls the heuristic thresholds.
type ClassifyOptions struct {
	Delimiter      string  // multi-choice separator. Default ";"
	MaxUniqueRatio float64 // distinct/non-null must be strictly below this. Default 0.2
	MaxOptions     int     // distinct must be strictly below this. Default 50
}

// DefaultClassifyOptions returns the standard survey thresholds.
func DefaultClassifyOptions() ClassifyOptions {
	return ClassifyOptions{
		Delimiter:      DefaultDelimiter,
		MaxUniqueRatio: 0.2,
		MaxOptions:     50,
	}
}

// ClassifyOption mutates ClassifyOptions.
type ClassifyOption func(*ClassifyOptions)

// WithDelimiter overrides the multi-choice separator.
func WithDelimiter(d string) ClassifyOption {
	return func(o *ClassifyOptions) {
		if d != "" {
			o.Delimiter = d
		}
	}
}

// WithThresholds overrides the single-choice cardinality limits.
func WithThresholds(maxUniqueRatio float64, maxOptions int) ClassifyOption {
	return func(o *ClassifyOptions) {
		if maxUniqueRatio > 0 {
			o.MaxUniqueRatio = maxUniqueRatio
		}
		if maxOptions > 0 {
			o.MaxOptions = maxOptions
		}
	}
}

func applyClassifyOptions(opts []ClassifyOption) ClassifyOptions {
	o := DefaultClassifyOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Classify infers the Question for one column from all of its values.
func Classify(id string, values []table.Cell, opts ...ClassifyOption) Question {
	o := applyClassifyOptions(opts)
	return Question{
		ID:      id,
		Text:    DisplayText(id),
		Variant: classifyValues(values, o),
	}
}

func classifyValues(values []table.Cell, o ClassifyOptions) Variant {
	nonNull := make([]table.Cell, 0, len(values))
	allNumeric := true
	hasDelimiter := false

	for _, v := range values {
		if v.IsNull() {
			continue
		}
		nonNull = append(nonNull, v)
		if !v.IsNumber() {
			allNumeric = false
		}
		if !hasDelimiter && strings.Contains(v.String(), o.Delimiter) {
			hasDelimiter = true
		}
	}

	n := len(nonNull)
	if n == 0 {
		return SingleChoice{Options: []string{}}
	}

	if allNumeric {
		return Numeric{}
	}

	if hasDelimiter {
		set := make(map[string]bool)
		for _, v := range nonNull {
			for _, tok := range SplitTokens(v.String(), o.Delimiter) {
				set[tok] = true
			}
		}
		return MultipleChoice{Options: sortedKeys(set)}
	}

	distinct := make(map[string]bool)
	for _, v := range nonNull {
		distinct[v.String()] = true
	}
	u := len(distinct)
	if float64(u)/float64(n) < o.MaxUniqueRatio && u < o.MaxOptions {
		return SingleChoice{Options: sortedKeys(distinct)}
	}
	return FreeText{}
}

// SplitTokens splits a multi-choice answer on the delimiter and trims each
// token. Empty tokens are kept so the vocabulary reflects the raw data.
func SplitTokens(value, delimiter string) []string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	parts := strings.Split(value, delimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
