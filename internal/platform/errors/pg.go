package errors

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlStates maps the SQLSTATEs a read path can hit; classes cover whole families
var sqlStates = map[string]ErrorCode{
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation, e.g. a non numeric id
	"22003": ErrorCodeInvalidArgument, // numeric_value_out_of_range
	"23505": ErrorCodeConflict,        // unique_violation
	"40001": ErrorCodeUnavailable,     // serialization_failure
	"40P01": ErrorCodeUnavailable,     // deadlock_detected
	"55P03": ErrorCodeUnavailable,     // lock_not_available
	"57014": ErrorCodeTimeout,         // query_canceled, raised by statement_timeout
	"57P01": ErrorCodeUnavailable,     // admin_shutdown
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now

	"08": ErrorCodeUnavailable, // connection_exception
	"53": ErrorCodeUnavailable, // insufficient_resources
}

// SQLState returns the SQLSTATE carried by err, or ""
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// PostgresCode classifies a driver error; anything unrecognised is ErrorCodeDB
func PostgresCode(err error) ErrorCode {
	switch {
	case stderrs.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err):
		return ErrorCodeTimeout
	case stderrs.Is(err, context.Canceled):
		return ErrorCodeUnavailable
	}
	if state := SQLState(err); len(state) >= 2 {
		if c, ok := sqlStates[state]; ok {
			return c
		}
		if c, ok := sqlStates[state[:2]]; ok {
			return c
		}
	}
	var connErr *pgconn.ConnectError
	if stderrs.As(err, &connErr) {
		return ErrorCodeUnavailable
	}
	return ErrorCodeDB
}

// FromPostgres wraps a driver error under its PostgresCode; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	e := Wrap(err, PostgresCode(err), msg)
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) && pgErr.ColumnName != "" {
		e = WithField(e, pgErr.ColumnName)
	}
	return e
}

// FromPostgresf is FromPostgres with a format
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// Retryable reports whether repeating the same statement may succeed
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch SQLState(err) {
	case "40001", "40P01", "55P03":
		return true
	}
	return pgconn.SafeToRetry(err)
}
