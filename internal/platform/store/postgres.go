package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/platform/logger"
	"storefront/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("storefront/store")

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// openPG creates the pool and waits for the server to answer
func openPG(ctx context.Context, cfg Config, log logger.Logger) (*pgDB, error) {
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		Slow:     cfg.PG.Slow,
	}, pg.WithObserver(pg.LogObserver(log, cfg.PG.LogSQL)))
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.retries()
	backoff := backoffStart
	var lastErr error
	for i := range attempts {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.PG.pingTimeout())
		lastErr = p.Pool.Ping(pingCtx)
		cancel()
		if lastErr == nil {
			return &pgDB{traced: traced{q: p.Pool, pg: p}}, nil
		}

		log.Warn().Err(lastErr).Int("attempt", i+1).Dur("backoff", backoff).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

// pgxQuerier is what pgxpool.Pool and pgx.Tx share
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// traced runs statements on q inside a span and reports them to the pg observer
type traced struct {
	q  pgxQuerier
	pg *pg.PG
}

func (t traced) start(ctx context.Context, op, sql string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pg."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", "postgresql"), attribute.String("db.statement", sql)),
	)
}

func (t traced) finish(ctx context.Context, span trace.Span, sql string, args []any, begun time.Time, err error) {
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	t.pg.Report(ctx, sql, args, begun, err)
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	ctx, span := t.start(ctx, "exec", sql)
	begun := time.Now()
	ct, err := t.q.Exec(ctx, sql, args...)
	t.finish(ctx, span, sql, args, begun, err)
	return ct, err
}

func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	ctx, span := t.start(ctx, "query", sql)
	begun := time.Now()
	rs, err := t.q.Query(ctx, sql, args...)
	if err != nil {
		t.finish(ctx, span, sql, args, begun, err)
		return nil, err
	}
	// the span covers iteration and ends on Close
	return &pgRows{Rows: rs, done: func(err error) { t.finish(ctx, span, sql, args, begun, err) }}, nil
}

func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	ctx, span := t.start(ctx, "query_row", sql)
	begun := time.Now()
	r := t.q.QueryRow(ctx, sql, args...)
	return pgRow{row: r, done: func(err error) { t.finish(ctx, span, sql, args, begun, err) }}
}

// pgDB is the pool backed TxRunner
type pgDB struct{ traced }

func (d *pgDB) Ping(ctx context.Context) error { return d.pg.Pool.Ping(ctx) }

func (d *pgDB) Close() error { d.pg.Close(); return nil }

// Tx commits when fn returns nil and rolls back otherwise
func (d *pgDB) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	ctx, span := tracer.Start(ctx, "pg.tx")
	defer span.End()

	err := pgx.BeginFunc(ctx, d.pg.Pool, func(tx pgx.Tx) error {
		return fn(traced{q: tx, pg: d.pg})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// pgRows exposes column names and reports the statement once on Close
type pgRows struct {
	pgx.Rows
	done func(error)
}

func (r *pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}

func (r *pgRows) Close() {
	r.Rows.Close()
	if r.done != nil {
		r.done(r.Rows.Err())
		r.done = nil
	}
}

type pgRow struct {
	row  pgx.Row
	done func(error)
}

func (r pgRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.done(err)
	return err
}
