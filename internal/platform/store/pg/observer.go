package pg

import (
	"context"
	"strings"
	"time"

	"storefront/internal/platform/logger"
)

// Statement is one executed query
type Statement struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// Observer receives executed statements
type Observer interface {
	Observe(ctx context.Context, st Statement)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, st Statement)

// Observe calls f
func (f ObserverFunc) Observe(ctx context.Context, st Statement) { f(ctx, st) }

// LogObserver writes statements through the request scoped logger
// all statements log at debug when logSQL is set, slow and failed ones always surface
func LogObserver(base logger.Logger, logSQL bool) Observer {
	log := base.With().Str("component", "pg").Logger()
	return ObserverFunc(func(ctx context.Context, st Statement) {
		if !logSQL && !st.Slow && st.Err == nil {
			return
		}
		l := logger.From(ctx, log)
		evt := l.Debug()
		switch {
		case st.Err != nil:
			evt = l.Error().Err(st.Err)
		case st.Slow:
			evt = l.Warn()
		}
		evt.Dur("elapsed", st.Elapsed).
			Bool("slow", st.Slow).
			Str("sql", squash(st.SQL)).
			Int("args", len(st.Args)).
			Msg("pg statement")
	})
}

// squash collapses whitespace runs so multi line statements log on one line
func squash(s string) string { return strings.Join(strings.Fields(s), " ") }
