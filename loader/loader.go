package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/surveyq/table"
)

// ============================================================================
// LOADER — Reads survey sources into one merged respondent table
// ============================================================================
// Every path is checked before any parsing starts; a missing file aborts the
// whole load. Sources are then parsed concurrently and merged in the order
// given. A source that exists but cannot be parsed is logged and skipped.
// ============================================================================

// Load reads every path and merges the results with table.Merge.
//
// Errors:
//   - *SourceNotFoundError if any path is missing (checked up front)
//   - *table.EmptyInputError if paths is empty or no source could be parsed
func Load(ctx context.Context, paths []string, opts ...Option) (*table.Table, error) {
	o := applyOptions(opts)

	if len(paths) == 0 {
		return nil, &table.EmptyInputError{}
	}
	for _, p := range paths {
		if err := checkPath(p); err != nil {
			return nil, err
		}
	}

	results := make([]*table.Table, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, p := range paths {
		g.Go(func() error {
			t, err := readSource(gctx, p, o)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				o.logger.Warn("Skipping unreadable survey source",
					zap.String("path", p), zap.Error(err))
				return nil
			}
			o.logger.Info("Loaded survey source",
				zap.String("path", p),
				zap.Int("rows", t.Len()),
				zap.Int("columns", len(t.Columns())))
			results[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var views []table.View
	for _, t := range results {
		if t != nil {
			views = append(views, t)
		}
	}
	if len(views) == 0 {
		return nil, &table.EmptyInputError{Reason: fmt.Sprintf("none of %d sources could be read", len(paths))}
	}
	return table.Merge(views...)
}

// ReadSource parses a single file, picking the reader from its extension.
func ReadSource(ctx context.Context, path string, opts ...Option) (*table.Table, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	return readSource(ctx, path, applyOptions(opts))
}

func readSource(ctx context.Context, path string, o *options) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".txt":
		return readCSVFile(path, o.comma)
	case ".tsv":
		return readCSVFile(path, '\t')
	case ".xlsx", ".xlsm":
		return readXLSX(path, o.sheet)
	case ".dta":
		return readStata(path)
	case ".sas7bdat":
		return readSAS(path)
	}
	return nil, &UnsupportedFormatError{Path: path, Ext: ext}
}

func checkPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &SourceNotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &SourceNotFoundError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}
	return nil
}
