package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/spektr-org/surveyq/table"
)

// ============================================================================
// SQLITE EXPORT — Writes a respondent view into a single SQLite table
// ============================================================================
// Columns whose non-null cells are all numbers become REAL, everything else
// TEXT. Null cells are stored as SQL NULL. The target table is replaced.
// ============================================================================

// WriteSQLite writes view into tableName inside the database at path,
// creating the file if needed.
func WriteSQLite(ctx context.Context, path, tableName string, view table.View) error {
	if strings.TrimSpace(tableName) == "" {
		return fmt.Errorf("export table name is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	cols := view.Columns()
	defs := make([]string, len(cols))
	quoted := make([]string, len(cols))
	for j, c := range cols {
		quoted[j] = quoteIdent(c)
		defs[j] = quoted[j] + " " + columnType(view, c)
	}
	name := quoteIdent(tableName)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+name); err != nil {
		return fmt.Errorf("failed to drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+name+` (`+strings.Join(defs, ", ")+`)`); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	if len(cols) == 0 {
		return tx.Commit()
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+name+` (`+strings.Join(quoted, ", ")+`) VALUES (`+ph+`)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for i := 0; i < view.Len(); i++ {
		for j, c := range cols {
			args[j] = sqlValue(view.Cell(i, c))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// columnType is REAL when the column holds numbers only.
func columnType(view table.View, column string) string {
	numeric := false
	for i := 0; i < view.Len(); i++ {
		c := view.Cell(i, column)
		switch {
		case c.IsText():
			return "TEXT"
		case c.IsNumber():
			numeric = true
		}
	}
	if numeric {
		return "REAL"
	}
	return "TEXT"
}

func sqlValue(c table.Cell) any {
	if f, ok := c.Number(); ok {
		return f
	}
	if s, ok := c.Text(); ok {
		return s
	}
	return nil
}

// quoteIdent quotes an SQL identifier, doubling embedded quotes.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

