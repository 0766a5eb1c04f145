package store

import (
	"context"
	"reflect"
	"strings"
	"sync"

	perr "storefront/internal/platform/errors"
)

// One scans exactly one row; no rows is perr.ErrNotFound, more than one is an error
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	out, err := collect(ctx, q, scan, 2, sql, args...)
	switch {
	case err != nil:
		return zero, err
	case len(out) == 0:
		return zero, perr.ErrNotFound
	case len(out) > 1:
		return zero, perr.Newf(perr.ErrorCodeInternal, "expected one row from %q", firstLine(sql))
	}
	return out[0], nil
}

// Many scans every row
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return collect(ctx, q, scan, -1, sql, args...)
}

// Maps returns each row keyed by column name
func Maps(ctx context.Context, q RowQuerier, sql string, args ...any) ([]map[string]any, error) {
	return collectRows(ctx, q, -1, scanMap, sql, args...)
}

// StructsByName fills T by matching column names to `db` tags, or field names when untagged
// `db:"-"` skips a field; unmatched columns are ignored
func StructsByName[T any](ctx context.Context, q RowQuerier, sql string, args ...any) ([]T, error) {
	fields := fieldsOf(reflect.TypeFor[T]())
	return collectRows(ctx, q, -1, func(rows Rows) (T, error) {
		var item T
		m, err := scanMap(rows)
		if err != nil {
			return item, err
		}
		rv := reflect.ValueOf(&item).Elem()
		for col, v := range m {
			if i, ok := fields[strings.ToLower(col)]; ok {
				assign(rv.Field(i), v)
			}
		}
		return item, nil
	}, sql, args...)
}

func collect[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), limit int, sql string, args ...any) ([]T, error) {
	return collectRows(ctx, q, limit, func(rows Rows) (T, error) { return scan(rows) }, sql, args...)
}

// collectRows stops after limit rows when limit is positive
func collectRows[T any](ctx context.Context, q RowQuerier, limit int, scan func(Rows) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, rows.Err()
}

func scanMap(rows Rows) (map[string]any, error) {
	cols := rows.Columns()
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	m := make(map[string]any, len(cols))
	for i, c := range cols {
		m[c] = plain(vals[i])
	}
	return m, nil
}

// plain dereferences pointer values so a NULL column reads as nil
func plain(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}

var fieldCache sync.Map // reflect.Type -> map[string]int

// fieldsOf maps lowercased column names to exported field indexes
func fieldsOf(t reflect.Type) map[string]int {
	if v, ok := fieldCache.Load(t); ok {
		return v.(map[string]int)
	}
	out := make(map[string]int, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("db")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		out[strings.ToLower(name)] = i
	}
	fieldCache.Store(t, out)
	return out
}

// assign sets dst from src when assignable or convertible; anything else leaves dst zero
func assign(dst reflect.Value, src any) {
	if src == nil {
		dst.SetZero()
		return
	}
	sv := reflect.ValueOf(src)
	if sv.Kind() == reflect.Pointer {
		if sv.IsNil() {
			dst.SetZero()
			return
		}
		sv = sv.Elem()
	}
	switch {
	case sv.Type().AssignableTo(dst.Type()):
		dst.Set(sv)
	case sv.Kind() == reflect.Slice && dst.Kind() == reflect.String:
		if b, ok := sv.Interface().([]byte); ok {
			dst.SetString(string(b))
		}
	case dst.Kind() != reflect.String && sv.Type().ConvertibleTo(dst.Type()):
		dst.Set(sv.Convert(dst.Type()))
	}
}

func firstLine(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexByte(sql, '\n'); i >= 0 {
		return sql[:i]
	}
	return sql
}
