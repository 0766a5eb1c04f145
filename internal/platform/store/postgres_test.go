package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakePgx answers like a pool or tx would
type fakePgx struct {
	rows   *fakePgxRows
	rowErr error
	err    error
}

func (f *fakePgx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("SET"), f.err
}

func (f *fakePgx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakePgx) QueryRow(context.Context, string, ...any) pgx.Row { return fakePgxRow{err: f.rowErr} }

type fakePgxRow struct{ err error }

func (r fakePgxRow) Scan(...any) error { return r.err }

type fakePgxRows struct {
	pgx.Rows
	n      int
	closed bool
}

func (r *fakePgxRows) Next() bool        { r.n--; return r.n >= 0 }
func (r *fakePgxRows) Err() error        { return nil }
func (r *fakePgxRows) Close()            { r.closed = true }
func (r *fakePgxRows) Scan(...any) error { return nil }
func (r *fakePgxRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "id"}, {Name: "code"}}
}

func observed() (*pg.PG, *[]pg.Statement) {
	var got []pg.Statement
	return &pg.PG{Observer: pg.ObserverFunc(func(_ context.Context, st pg.Statement) { got = append(got, st) })}, &got
}

func TestTraced_ReportsEveryStatement(t *testing.T) {
	t.Parallel()

	p, got := observed()
	rows := &fakePgxRows{n: 2}
	tr := traced{q: &fakePgx{rows: rows, rowErr: pgx.ErrNoRows}, pg: p}
	ctx := context.Background()

	if ct, err := tr.Exec(ctx, "SET TRANSACTION READ ONLY"); err != nil || ct.String() != "SET" {
		t.Fatalf("Exec = %v, %v", ct, err)
	}

	rs, err := tr.Query(ctx, "select id, code from catalog")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if cols := rs.Columns(); len(cols) != 2 || cols[1] != "code" {
		t.Fatalf("columns = %v", cols)
	}
	for rs.Next() {
	}
	if len(*got) != 1 {
		t.Fatalf("query must report on Close, not before: %d", len(*got))
	}
	rs.Close()
	rs.Close()
	if !rows.closed || len(*got) != 2 {
		t.Fatalf("close must report once, got %d", len(*got))
	}

	var id string
	if err := tr.QueryRow(ctx, "select id from catalog where id = $1", "1").Scan(&id); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("QueryRow = %v", err)
	}
	if len(*got) != 3 || (*got)[2].Err == nil || len((*got)[2].Args) != 1 {
		t.Fatalf("statements = %+v", *got)
	}
}

func TestTraced_QueryError(t *testing.T) {
	t.Parallel()

	p, got := observed()
	tr := traced{q: &fakePgx{err: errors.New("conn reset")}, pg: p}
	if _, err := tr.Query(context.Background(), "select 1"); err == nil {
		t.Fatal("expected error")
	}
	if len(*got) != 1 || (*got)[0].Err == nil {
		t.Fatalf("failed query must still report: %+v", *got)
	}
}

func TestTraced_NoObserver(t *testing.T) {
	t.Parallel()

	tr := traced{q: &fakePgx{}, pg: &pg.PG{Slow: time.Millisecond}}
	if _, err := tr.Exec(context.Background(), "select 1"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
}
