// Package surveyq merges developer-survey exports and answers questions
// about them.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/surveyq/engine"
//	    "github.com/spektr-org/surveyq/session"
//	)
//
//	s, err := session.Open(ctx, []string{"2023.csv", "2024.xlsx"}, nil, nil)
//	dist, err := engine.ComputeDistribution(s.Table, s.Catalog, "LanguageWorkedWith")
//	usa, err := engine.Subset(s.Table, s.Catalog, "Country", []string{"USA"})
//
// Long-lived callers hold a session.Manager instead: Load swaps in a new
// session, Save records its sources, and Resume reopens them in a later
// process. The surveyq command works this way.
//
// The table package holds the merged respondent table, schema classifies
// each column into a typed question, and engine runs search, filtering and
// answer distributions over any table.View. Everything is computed locally
// and in memory.
package surveyq
