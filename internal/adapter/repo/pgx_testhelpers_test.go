package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeExecutor struct {
	exec     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	queryRow func(ctx context.Context, query string, args ...any) pgx.Row
	query    func(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

func (f *fakeExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	return f.exec(ctx, query, args...)
}

func (f *fakeExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return f.queryRow(ctx, query, args...)
}

func (f *fakeExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return f.query(ctx, query, args...)
}

type simpleRow struct {
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

// testRowsBase supplies the pgx.Rows methods the repositories never touch.
type testRowsBase struct{}

func (testRowsBase) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (testRowsBase) Conn() *pgx.Conn { return nil }

func (testRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (testRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (testRowsBase) RawValues() [][]byte { return nil }

type sliceRows struct {
	testRowsBase
	rows [][]any
	pos  int
	err  error
}

func (r *sliceRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *sliceRows) Scan(dest ...any) error {
	return assignRow(r.rows[r.pos-1], dest...)
}

func (r *sliceRows) Close() {}

func (r *sliceRows) Err() error { return r.err }

func assignRow(src []any, dest ...any) error {
	if len(src) != len(dest) {
		return fmt.Errorf("scan expects %d destinations, got %d", len(src), len(dest))
	}
	for i, v := range src {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int64:
			*d = v.(int64)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return fmt.Errorf("unsupported scan destination %T", d)
		}
	}
	return nil
}
