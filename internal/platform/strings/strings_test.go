package strings

import (
	"testing"

	"storefront/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	def := []string{"catalog"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "catalog" {
		t.Fatalf("nil input = %v", got)
	}
	if got := IfEmpty([]string{"stock"}, def); got[0] != "stock" {
		t.Fatalf("non empty input = %v", got)
	}
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"jsonapi":    "/jsonapi",
		"/jsonapi/":  "/jsonapi",
		" //meta// ": "/meta",
		"/a/b":       "/a/b",
	} {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", " ", "/", " / "} {
		testkit.MustPanic(t, func() { MustPrefix(bad) })
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if MustString(" x ", "name") != " x " {
		t.Fatal("value must pass through untouched")
	}
	testkit.MustPanic(t, func() { MustString("\t", "name") })
}

func TestPtrDeref(t *testing.T) {
	t.Parallel()

	if Ptr("") != nil || Ptr(0) != nil {
		t.Fatal("zero values must map to nil")
	}
	if p := Ptr("/shop"); p == nil || Deref(p) != "/shop" {
		t.Fatalf("Ptr/Deref round trip = %v", p)
	}
	if Deref[string](nil) != "" || Deref[int](nil) != 0 {
		t.Fatal("nil must deref to zero")
	}
}
