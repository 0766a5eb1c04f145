// Package testkit holds helpers shared by package tests
package testkit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var serial sync.Mutex

// Swap points target at replacement until the test ends
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	prev := *target
	*target = replacement
	t.Cleanup(func() { *target = prev })
}

// Serial holds a process wide lock until the test ends
// tests that Swap package state take it so parallel tests never see the swap
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
}

// MustContain fails t unless haystack contains needle
// long haystacks are written to a temp file instead of the test log
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	if len(haystack) <= 512 {
		t.Fatalf("missing %q in %q", needle, haystack)
	}
	out := filepath.Join(t.TempDir(), "haystack.txt")
	_ = os.WriteFile(out, []byte(haystack), 0o600)
	t.Fatalf("missing %q; output written to %s", needle, out)
}

// DecodeJSON unmarshals b into T or fails t
func DecodeJSON[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}
