package schema

import (
	"strings"
	"unicode"
)

// ============================================================================
// STRING UTILITIES
// ============================================================================

// CleanColumnName replaces punctuation with spaces and collapses whitespace.
// "Test_Column-Name!" → "Test Column Name"
func CleanColumnName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// DisplayText derives a readable question from a column identifier.
// "YearsCodePro" → "YearsCodePro?", "Learn_Code (online)" → "Learn Code online?"
func DisplayText(id string) string {
	text := CleanColumnName(id)
	if !strings.HasSuffix(text, "?") {
		text += "?"
	}
	return text
}
