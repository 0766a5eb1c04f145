// Package pg opens the pgx pool the store adapts and reports every statement it runs
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the pool setup
type Config struct {
	URL      string
	AppName  string
	MaxConns int32
	// Slow marks statements at or above this duration; zero marks none
	Slow time.Duration
}

// PG owns the pool and the statement observer
type PG struct {
	Pool     *pgxpool.Pool
	Observer Observer
	Slow     time.Duration
}

// Option tunes PG or its pool config before the pool is created
type Option func(*PG, *pgxpool.Config)

// WithObserver reports every statement to o
func WithObserver(o Observer) Option {
	return func(p *PG, _ *pgxpool.Config) { p.Observer = o }
}

// WithPoolConfig exposes the parsed pool config
func WithPoolConfig(fn func(*pgxpool.Config)) Option {
	return func(_ *PG, pc *pgxpool.Config) { fn(pc) }
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and creates the pool; it does not wait for the server
func Open(ctx context.Context, cfg Config, opts ...Option) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}

	p := &PG{Slow: cfg.Slow}
	for _, o := range opts {
		o(p, pc)
	}

	if p.Pool, err = newPool(ctx, pc); err != nil {
		return nil, err
	}
	return p, nil
}

// Close releases the pool; safe on nil
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// Report hands a finished statement to the observer
func (p *PG) Report(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if p == nil || p.Observer == nil {
		return
	}
	elapsed := time.Since(start)
	p.Observer.Observe(ctx, Statement{
		SQL:     sql,
		Args:    args,
		Elapsed: elapsed,
		Err:     err,
		Slow:    p.Slow > 0 && elapsed >= p.Slow,
	})
}
