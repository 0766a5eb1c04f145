package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodes_NameAndStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   ErrorCode
		name   string
		status int
	}{
		{ErrorCodeUnknown, "unknown", http.StatusInternalServerError},
		{ErrorCodeInternal, "internal", http.StatusInternalServerError},
		{ErrorCodePanic, "panic", http.StatusInternalServerError},
		{ErrorCodeUnavailable, "unavailable", http.StatusServiceUnavailable},
		{ErrorCodeTimeout, "timeout", http.StatusGatewayTimeout},
		{ErrorCodeValidation, "validation", http.StatusBadRequest},
		{ErrorCodeInvalidArgument, "invalid_argument", http.StatusUnprocessableEntity},
		{ErrorCodeNotFound, "not_found", http.StatusNotFound},
		{ErrorCodeForbidden, "forbidden", http.StatusForbidden},
		{ErrorCodeConflict, "conflict", http.StatusConflict},
		{ErrorCodeDB, "db", http.StatusInternalServerError},
		{999, "code_999", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.code.String(); got != tc.name {
			t.Fatalf("String(%d) = %q, want %q", tc.code, got, tc.name)
		}
		if got := HTTPStatusCode(tc.code); got != tc.status {
			t.Fatalf("HTTPStatusCode(%s) = %d, want %d", tc.name, got, tc.status)
		}
	}
}

func TestError_MessageAndChain(t *testing.T) {
	t.Parallel()

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil Error() = %q", nilErr.Error())
	}

	cause := stderrs.New("conn reset")
	err := Wrapf(cause, ErrorCodeDB, "load node %s", "12")
	if err.Error() != "load node 12: conn reset" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) || Root(fmt.Errorf("outer: %w", err)) != cause {
		t.Fatalf("cause lost")
	}
	if Wrap(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
	if Root(nil) != nil {
		t.Fatalf("Root(nil) must be nil")
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"not found", NotFoundf("node %d", 1), ErrorCodeNotFound, 404},
		{"wrapped by fmt", fmt.Errorf("ctx: %w", DBf("boom")), ErrorCodeDB, 500},
		{"internal", Internalf("x"), ErrorCodeInternal, 500},
		{"unavailable", Unavailablef("x"), ErrorCodeUnavailable, 503},
		{"panic", PanicErrf("x"), ErrorCodePanic, 500},
		{"foreign", stderrs.New("plain"), ErrorCodeUnknown, 500},
		{"nil", nil, ErrorCodeUnknown, 500},
	}
	for _, tc := range cases {
		if got := CodeOf(tc.err); got != tc.code || !IsCode(tc.err, tc.code) {
			t.Fatalf("%s: CodeOf = %v, want %v", tc.name, got, tc.code)
		}
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Fatalf("%s: HTTPStatus = %d, want %d", tc.name, got, tc.status)
		}
	}
}

func TestWithFieldAndWire(t *testing.T) {
	t.Parallel()

	base := New(ErrorCodeValidation, "must be a number")
	withField := WithField(base, "page[offset]")
	if e, _ := As(base); e.Field() != "" {
		t.Fatalf("WithField mutated the original")
	}

	w := WireFrom(fmt.Errorf("bind: %w", withField))
	if w.Code != ErrorCodeValidation || w.Message != "must be a number" || w.Field != "page[offset]" {
		t.Fatalf("wire = %+v", w)
	}

	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain {
		t.Fatalf("foreign errors pass through")
	}
	if w := WireFrom(plain); w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("foreign wire = %+v", w)
	}
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	if e, ok := As(Wrap(stderrs.New("c"), ErrorCodeDB, "m")); !ok || e.Code() != ErrorCodeDB || e.Unwrap() == nil {
		t.Fatalf("As = %+v, %v", e, ok)
	}
}

func TestErrNotFound_IsSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("repo: %w", ErrNotFound)
	if !stderrs.Is(err, ErrNotFound) || !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("sentinel lost")
	}
}
