// Package strings holds the small string and slice helpers the modules share
package strings

import std "strings"

// IfEmpty is def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics naming what when s is blank
func MustString(s, what string) string {
	if std.TrimSpace(s) == "" {
		panic(what + " is required")
	}
	return s
}

// MustPrefix normalizes a mount prefix to one leading slash and no trailing slash
// the bare root panics
func MustPrefix(s string) string {
	p := "/" + std.Trim(std.TrimSpace(s), " /")
	if p == "/" {
		panic("root path is required")
	}
	return p
}

// Ptr is nil for the zero value, else a pointer to a copy of v
func Ptr[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// Deref is the zero value for nil, else *p
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
