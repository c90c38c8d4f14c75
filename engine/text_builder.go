package engine

import (
	"fmt"
	"strings"

	"github.com/spektr-org/surveyq/schema"
	"github.com/spektr-org/surveyq/table"
)

// BuildSummary counts respondents and questions per type.
// Types are listed in schema.Types order and omitted when empty.
func BuildSummary(view table.View, c *schema.Catalog) *SurveySummary {
	counts := c.Counts()
	s := &SurveySummary{
		Respondents: view.Len(),
		Questions:   c.Len(),
	}
	for _, t := range schema.Types {
		if n := counts[t]; n > 0 {
			s.ByType = append(s.ByType, TypeCount{Type: t, Count: n})
		}
	}
	return s
}

// Text renders the summary as short plain-text lines.
func (s *SurveySummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Respondents: %s\n", FormatInt(s.Respondents))
	fmt.Fprintf(&b, "Total Questions: %s\n", FormatInt(s.Questions))
	b.WriteString("Question Types:\n")
	for _, tc := range s.ByType {
		fmt.Fprintf(&b, "  %s (%s): %d\n", tc.Type.Label(), tc.Type, tc.Count)
	}
	return b.String()
}

// DescribeDistribution is the one-line header printed above a distribution.
func DescribeDistribution(d *Distribution) string {
	return fmt.Sprintf("%s [%s] total=%s valid=%s response rate=%s",
		d.Question.ID, d.Question.Type(),
		FormatInt(d.TotalResponses), FormatInt(d.ValidResponses), FormatPercent(d.ResponseRate))
}
