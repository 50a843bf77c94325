package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxBeginner starts transactions. Satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// LoadMethod names how rows reach the table.
type LoadMethod string

const (
	MethodInsert LoadMethod = "insert"
	MethodCopy   LoadMethod = "copy"
)

// LoadOptions selects the target table and row transfer method.
type LoadOptions struct {
	Table string
	// UseCopy sends rows over the COPY protocol instead of the INSERT script.
	// COPY quotes identifiers, so table and column names are folded to lower
	// case to match the unquoted CREATE TABLE.
	UseCopy bool
}

// LoadResult describes a completed load.
type LoadResult struct {
	ID       uuid.UUID     `json:"id"`
	Table    string        `json:"table"`
	Columns  []Column      `json:"columns"`
	Rows     int64         `json:"rows"`
	Method   LoadMethod    `json:"method"`
	Duration time.Duration `json:"duration"`
}

// Loader recreates a parsed table in PostgreSQL.
type Loader struct {
	db TxBeginner
}

// NewLoader creates a Loader over db.
func NewLoader(db TxBeginner) *Loader {
	return &Loader{db: db}
}

// Load drops and recreates the table, then inserts every row, all in one
// transaction. Nothing is committed on error.
func (l *Loader) Load(ctx context.Context, result *ParseResult, opts LoadOptions) (*LoadResult, error) {
	table := tableOrDefault(opts.Table)

	ddl, err := EmitDDL(result, table)
	if err != nil {
		return nil, err
	}

	res := &LoadResult{
		ID:      uuid.New(),
		Table:   table,
		Columns: result.Columns,
		Method:  MethodInsert,
	}
	if opts.UseCopy {
		res.Method = MethodCopy
	}

	logger := slog.With("load_id", res.ID, "table", table, "method", res.Method)
	start := time.Now()

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op after commit

	if _, err := tx.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}

	if len(result.Rows) > 0 {
		if opts.UseCopy {
			res.Rows, err = copyRows(ctx, tx, result, table)
		} else {
			res.Rows, err = insertRows(ctx, tx, result, table)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	res.Duration = time.Since(start)
	logger.Info("table loaded", "rows", res.Rows, "columns", len(result.Columns), "duration_ms", res.Duration.Milliseconds())
	return res, nil
}

func insertRows(ctx context.Context, tx pgx.Tx, result *ParseResult, table string) (int64, error) {
	insert, err := EmitInsert(result, table)
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("insert rows into %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

func copyRows(ctx context.Context, tx pgx.Tx, result *ParseResult, table string) (int64, error) {
	names := make([]string, len(result.Columns))
	for i, col := range result.Columns {
		names[i] = strings.ToLower(col.Name)
	}

	src := pgx.CopyFromSlice(len(result.Rows), func(i int) ([]any, error) {
		row := result.Rows[i]
		values := make([]any, len(result.Columns))
		for j, col := range result.Columns {
			values[j] = row[col.Name].PgValue()
		}
		return values, nil
	})

	n, err := tx.CopyFrom(ctx, pgx.Identifier{strings.ToLower(table)}, names, src)
	if err != nil {
		return 0, fmt.Errorf("copy rows into %s: %w", table, err)
	}
	return n, nil
}
