package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/surveyq/engine"
	"github.com/spektr-org/surveyq/export"
	"github.com/spektr-org/surveyq/schema"
	"github.com/spektr-org/surveyq/table"
)

// ── load ──────────────────────────────────────────────────────────────────

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load FILE...",
		Short: "Load and merge survey files",
		Long: `Validates and merges the given survey files, then records them as the
current session so later commands can run without --file.

Supported formats: .csv, .tsv, .txt, .xlsx, .dta (Stata), .sas7bdat (SAS).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sessions.Load(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := a.sessions.Save(); err != nil {
				return err
			}
			a.logger.Debug("Session saved", zap.String("manifest", a.sessions.ManifestPath()))

			fmt.Fprintf(a.stdout, "Successfully loaded %s respondents and %d questions from %d files.\n",
				engine.FormatInt(s.Table.Len()), s.Catalog.Len(), len(args))
			return nil
		},
	}
}

// ── list-questions ────────────────────────────────────────────────────────

func newListQuestionsCmd(a *app) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "list-questions",
		Short: "List every question with its inferred type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			questions := s.Catalog.All()
			if typeName != "" {
				t, ok := schema.ParseType(typeName)
				if !ok {
					return fmt.Errorf("unknown question type %q (valid: SC, MC, NUMERIC, TEXT)", typeName)
				}
				questions = s.Catalog.ByType(t)
			}
			return a.render(engine.BuildQuestionTable(questions))
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "Only list questions of this type (SC, MC, NUMERIC, TEXT)")
	return cmd
}

// ── search ────────────────────────────────────────────────────────────────

func newSearchCmd(a *app) *cobra.Command {
	var q engine.Query

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search questions and answer options",
		Long: `Case-insensitive substring search.

  --question TEXT   questions whose identifier, text, or options contain TEXT
  --option TEXT     the answer options containing TEXT, grouped by question`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			res := engine.Search(s.Catalog, q)

			if a.format != formatText {
				return a.render(searchTable(res))
			}
			if res.Empty() {
				fmt.Fprintln(a.stdout, "No matches found.")
				return nil
			}
			if len(res.Questions) > 0 {
				fmt.Fprintln(a.stdout, "Matching questions:")
				for _, mq := range res.Questions {
					fmt.Fprintf(a.stdout, "  %s (%s)\n", mq.ID, mq.Type())
				}
			}
			if len(res.Options) > 0 {
				fmt.Fprintln(a.stdout, "Matching options:")
				for _, m := range res.Options {
					fmt.Fprintf(a.stdout, "  %s: %s\n", m.Question.ID, strings.Join(m.Options, ", "))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Question, "question", "", "Text to search in questions")
	cmd.Flags().StringVar(&q.Option, "option", "", "Text to search in answer options")
	return cmd
}

// searchTable flattens a search result into one row per hit.
func searchTable(res engine.SearchResult) *engine.TableData {
	td := &engine.TableData{
		Title: "Search results",
		Columns: []engine.Column{
			{Key: "match", Label: "Match", Type: "text", Align: "left"},
			{Key: "question", Label: "Question", Type: "text", Align: "left"},
			{Key: "value", Label: "Value", Type: "text", Align: "left"},
		},
	}
	for _, q := range res.Questions {
		td.Rows = append(td.Rows, []string{"question", q.ID, string(q.Type())})
	}
	for _, m := range res.Options {
		for _, opt := range m.Options {
			td.Rows = append(td.Rows, []string{"option", m.Question.ID, opt})
		}
	}
	return td
}

// ── filter ────────────────────────────────────────────────────────────────

func newFilterCmd(a *app) *cobra.Command {
	var (
		question   string
		options    []string
		output     string
		sqlitePath string
		tableName  string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Select respondents by their answer to one question",
		Long: `Keeps the respondents whose answer to --question matches any --option.
Multiple-choice answers match when any selected option equals a value.

The subset can be saved as CSV (--output) or into a SQLite table (--sqlite).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			sub, err := engine.Subset(s.Table, s.Catalog, question, options)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Filtered data: %s of %s respondents\n",
				engine.FormatInt(sub.Len()), engine.FormatInt(s.Table.Len()))

			if output != "" {
				if err := writeCSVFile(output, sub); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "Results saved to %s\n", output)
			}
			if sqlitePath != "" {
				if err := export.WriteSQLite(cmd.Context(), sqlitePath, tableName, sub); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "Results saved to %s (table %s)\n", sqlitePath, tableName)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&question, "question", "", "Question identifier")
	f.StringArrayVar(&options, "option", nil, "Answer to keep (repeatable)")
	f.StringVar(&output, "output", "", "Save the subset as CSV")
	f.StringVar(&sqlitePath, "sqlite", "", "Save the subset into a SQLite database")
	f.StringVar(&tableName, "table", "responses", "Table name for --sqlite")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("option")
	return cmd
}

func writeCSVFile(path string, view table.View) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := export.WriteCSV(f, view); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ── distribution ──────────────────────────────────────────────────────────

func newDistributionCmd(a *app) *cobra.Command {
	var (
		question string
		top      int
		sortBy   string
		where    string
	)

	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Show how answers to a question are distributed",
		Long: `Counts each answer to --question. Percentages are shares of respondents
who answered; for multiple-choice questions they may sum past 100%.

  --where Q=VALUE   restrict to respondents whose answer to Q matches VALUE
  --top N           show the N most common answers (0 = all)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			var view table.View = s.Table
			if where != "" {
				id, value, ok := strings.Cut(where, "=")
				if !ok || id == "" {
					return fmt.Errorf("--where must look like QUESTION=VALUE, got %q", where)
				}
				sub, err := engine.Subset(s.Table, s.Catalog, id, []string{value})
				if err != nil {
					return err
				}
				view = sub
			}

			d, err := engine.ComputeDistribution(view, s.Catalog, question)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("top") {
				top = a.cfg.Display.TopN
			}
			td := engine.BuildDistributionTable(d,
				engine.WithSort(sortBy),
				engine.WithLimit(top),
				engine.WithTitle(fmt.Sprintf("Distribution for '%s'", question)),
			)
			if a.format == formatText {
				fmt.Fprintln(a.stdout, engine.DescribeDistribution(d))
			}
			return a.render(td)
		},
	}
	f := cmd.Flags()
	f.StringVar(&question, "question", "", "Question identifier")
	f.IntVar(&top, "top", 0, "Show only the N most common answers (default from config, 0 = all)")
	f.StringVar(&sortBy, "sort", engine.SortCountDesc, "Order: count_desc, count_asc, label_asc")
	f.StringVar(&where, "where", "", "Restrict to respondents matching QUESTION=VALUE")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}

// ── summary ───────────────────────────────────────────────────────────────

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize respondents and question types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			sum := engine.BuildSummary(s.Table, s.Catalog)

			switch a.format {
			case formatJSON, formatPretty:
				return writeJSON(a.stdout, sum, a.format)
			case formatCSV:
				return a.render(summaryTable(sum))
			}
			fmt.Fprint(a.stdout, sum.Text())
			return nil
		},
	}
}

func summaryTable(s *engine.SurveySummary) *engine.TableData {
	td := &engine.TableData{
		Title: "Summary",
		Columns: []engine.Column{
			{Key: "metric", Label: "Metric", Type: "text", Align: "left"},
			{Key: "value", Label: "Value", Type: "number", Align: "right"},
		},
		Rows: [][]string{
			{"respondents", engine.FormatInt(s.Respondents)},
			{"questions", engine.FormatInt(s.Questions)},
		},
	}
	for _, tc := range s.ByType {
		td.Rows = append(td.Rows, []string{string(tc.Type), engine.FormatInt(tc.Count)})
	}
	return td
}
