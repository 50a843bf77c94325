package core

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeTx records statements and copied rows. Methods not overridden panic
// through the nil embedded interface.
type fakeTx struct {
	pgx.Tx

	execs      []string
	execErr    error
	copyTable  pgx.Identifier
	copyCols   []string
	copied     [][]any
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	tx.execs = append(tx.execs, sql)
	if tx.execErr != nil && len(tx.execs) > 1 {
		return pgconn.CommandTag{}, tx.execErr
	}
	if strings.HasPrefix(sql, "INSERT") {
		return pgconn.NewCommandTag("INSERT 0 " + strconv.Itoa(strings.Count(sql, "\t("))), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (tx *fakeTx) CopyFrom(_ context.Context, table pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error) {
	tx.copyTable = table
	tx.copyCols = cols
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		tx.copied = append(tx.copied, values)
	}
	return int64(len(tx.copied)), src.Err()
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

func parsed(t *testing.T, text string) *ParseResult {
	t.Helper()
	result, err := Parse(text, ParseConfig{FirstLineHeaders: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return result
}

func TestLoader_Insert(t *testing.T) {
	tx := &fakeTx{}
	loader := NewLoader(&fakeDB{tx: tx})

	res, err := loader.Load(context.Background(), parsed(t, "id\tname\n1\tann\n2\tbob"), LoadOptions{Table: "people"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(tx.execs) != 2 {
		t.Fatalf("execs = %d, want 2 (ddl, insert)", len(tx.execs))
	}
	if !strings.HasPrefix(tx.execs[0], "DROP TABLE IF EXISTS people CASCADE;") {
		t.Errorf("first statement = %q, want DDL", tx.execs[0])
	}
	if !strings.HasPrefix(tx.execs[1], "INSERT INTO people (id, name) VALUES") {
		t.Errorf("second statement = %q, want INSERT", tx.execs[1])
	}
	if !tx.committed {
		t.Error("transaction not committed")
	}

	if res.Rows != 2 {
		t.Errorf("Rows = %d, want 2", res.Rows)
	}
	if res.Method != MethodInsert {
		t.Errorf("Method = %s, want %s", res.Method, MethodInsert)
	}
	if res.Table != "people" {
		t.Errorf("Table = %q, want people", res.Table)
	}
	if res.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("ID not set")
	}
}

func TestLoader_Copy(t *testing.T) {
	tx := &fakeTx{}
	loader := NewLoader(&fakeDB{tx: tx})

	res, err := loader.Load(context.Background(), parsed(t, "ID\tFlag\tNote\n10\tTRUE\tx\n20\tFALSE"), LoadOptions{Table: "Things", UseCopy: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(tx.execs) != 1 {
		t.Errorf("execs = %d, want only the DDL", len(tx.execs))
	}
	if got := tx.copyTable.Sanitize(); got != `"things"` {
		t.Errorf("copy table = %s, want \"things\"", got)
	}
	if strings.Join(tx.copyCols, ",") != "id,flag,note" {
		t.Errorf("copy columns = %v, want [id flag note]", tx.copyCols)
	}
	if res.Rows != 2 || res.Method != MethodCopy {
		t.Errorf("result = %+v, want 2 rows via copy", res)
	}

	if _, ok := tx.copied[0][0].(pgtype.Numeric); !ok {
		t.Errorf("copied id = %T, want pgtype.Numeric", tx.copied[0][0])
	}
	if b, ok := tx.copied[0][1].(pgtype.Bool); !ok || !b.Bool {
		t.Errorf("copied flag = %#v, want pgtype.Bool true", tx.copied[0][1])
	}
	if tx.copied[1][2] != nil {
		t.Errorf("missing cell copied as %#v, want nil", tx.copied[1][2])
	}
}

func TestLoader_ZeroRows(t *testing.T) {
	tx := &fakeTx{}
	loader := NewLoader(&fakeDB{tx: tx})

	res, err := loader.Load(context.Background(), parsed(t, "a\tb\n"), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tx.execs) != 1 {
		t.Errorf("execs = %d, want 1", len(tx.execs))
	}
	if res.Rows != 0 || res.Table != DefaultTableName {
		t.Errorf("result = %+v, want 0 rows into %s", res, DefaultTableName)
	}
}

func TestLoader_Errors(t *testing.T) {
	t.Run("begin fails", func(t *testing.T) {
		boom := errors.New("connection refused")
		loader := NewLoader(&fakeDB{beginErr: boom})

		_, err := loader.Load(context.Background(), parsed(t, "a\n1"), LoadOptions{})
		if !errors.Is(err, boom) {
			t.Errorf("Load() error = %v, want %v", err, boom)
		}
	})

	t.Run("insert fails rolls back", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42601", Message: "syntax error"}
		tx := &fakeTx{execErr: pgErr}
		loader := NewLoader(&fakeDB{tx: tx})

		_, err := loader.Load(context.Background(), parsed(t, "a\nit's"), LoadOptions{})
		if !errors.Is(err, pgErr) {
			t.Errorf("Load() error = %v, want PgError", err)
		}
		if tx.committed {
			t.Error("transaction committed after failure")
		}
		if !tx.rolledBack {
			t.Error("transaction not rolled back")
		}
		if MapError(err).Code != "DB001" {
			t.Errorf("MapError() code = %s, want DB001", MapError(err).Code)
		}
	})

	t.Run("malformed result", func(t *testing.T) {
		tx := &fakeTx{}
		loader := NewLoader(&fakeDB{tx: tx})

		_, err := loader.Load(context.Background(), &ParseResult{}, LoadOptions{})
		if !errors.Is(err, ErrMalformedResult) {
			t.Errorf("Load() error = %v, want ErrMalformedResult", err)
		}
		if len(tx.execs) != 0 {
			t.Error("no statement should run for a malformed result")
		}
	})
}
