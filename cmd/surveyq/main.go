package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/surveyq/config"
	"github.com/spektr-org/surveyq/logging"
	"github.com/spektr-org/surveyq/session"
)

// ============================================================================
// SURVEYQ CLI — Explore merged survey exports from the terminal
// ============================================================================

const version = "0.1.0"

// app carries per-invocation state shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// Global flags
	configPath string
	verbose    bool
	files      []string
	format     string

	cfg      *config.Config
	logger   *zap.Logger
	sessions *session.Manager
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "surveyq",
		Short: "surveyq - Query developer survey exports",
		Long: `surveyq merges one or more survey exports (CSV, Excel, Stata, SAS) into a
single respondent table, infers each question's type, and answers questions
about it: what was asked, who answered what, and how answers are distributed.

Run 'surveyq load FILE...' once; later commands reuse the loaded files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.format {
			case formatText, formatJSON, formatPretty, formatCSV:
			default:
				return fmt.Errorf("unknown output format %q (valid: text, json, pretty, csv)", a.format)
			}

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			a.cfg = cfg

			logger, err := logging.New(cfg.Logging, a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			a.sessions = session.NewManager(cfg, logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultPath, "Path to YAML config")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringArrayVarP(&a.files, "file", "f", nil, "Survey file to query instead of the loaded session (repeatable)")
	pf.StringVar(&a.format, "format", formatText, "Output format: text, json, pretty, csv")

	root.AddCommand(
		newLoadCmd(a),
		newListQuestionsCmd(a),
		newSearchCmd(a),
		newFilterCmd(a),
		newDistributionCmd(a),
		newSummaryCmd(a),
	)
	return root
}

// session rebuilds the dataset from --file flags or the saved manifest.
func (a *app) session(ctx context.Context) (*session.Session, error) {
	if len(a.files) > 0 {
		return a.sessions.Load(ctx, a.files)
	}
	return a.sessions.Resume(ctx)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var nl *session.NotLoadedError
		if errors.As(err, &nl) {
			fmt.Fprintln(stderr, "Hint: surveyq load FILE... or pass --file")
		}
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
