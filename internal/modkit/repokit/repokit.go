// Package repokit holds the seams SQL repos are written against
package repokit

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/platform/store"
)

type (
	// Queryer is what a repo issues statements through
	Queryer = store.RowQuerier

	// TxRunner opens transactions for a unit of work
	TxRunner = store.TxRunner

	// Rows is a result set
	Rows = store.Rows

	// Row is a single result
	Row = store.Row

	// CommandTag is what Exec reports
	CommandTag = store.CommandTag
)

// Binder produces a repo bound to one Queryer, usually a transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function into a Binder
type BindFunc[T any] func(Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q, panicking on a nil q
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil Queryer")
	}
	return b.Bind(q)
}

// WithTx runs fn in a transaction opened on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// BeginHook prepares a freshly opened transaction
type BeginHook func(ctx context.Context, q Queryer) error

// ReadOnly marks the transaction read only
func ReadOnly(ctx context.Context, q Queryer) error {
	_, err := q.Exec(ctx, "SET TRANSACTION READ ONLY")
	return err
}

// StatementTimeout caps every statement in the transaction at d
// a non positive d leaves the server default alone
func StatementTimeout(d time.Duration) BeginHook {
	return func(ctx context.Context, q Queryer) error {
		if d <= 0 {
			return nil
		}
		_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", d.Milliseconds()))
		return err
	}
}

// WithBeginHooks runs hooks, in order, at the top of every transaction opened on inner
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hooked{TxRunner: inner, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
