package bind

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	perr "storefront/internal/platform/errors"
)

// shared query shape for many tests
type query struct {
	Resource string            `query:"resource" validate:"omitempty,rtype"`
	Offset   int               `query:"page[offset]" validate:"min=0"`
	Limit    int               `query:"page[limit]" validate:"omitempty,min=1,max=500"`
	Pretty   bool              `query:"pretty"`
	Fields   map[string]string `query:"fields"`
	Skipped  string
}

func mustValues(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	return q
}

func TestParseQuery_Success(t *testing.T) {
	q := mustValues(t, "resource=catalog&page[offset]=10&page[limit]=25&pretty=1&fields[catalog]=label&fields[text]=content&Skipped=x")
	got, err := ParseQuery[query](q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Resource != "catalog" || got.Offset != 10 || got.Limit != 25 || !got.Pretty {
		t.Fatalf("got %+v", got)
	}
	if got.Fields["catalog"] != "label" || got.Fields["text"] != "content" || len(got.Fields) != 2 {
		t.Fatalf("fields = %v", got.Fields)
	}
	if got.Skipped != "" {
		t.Fatalf("untagged fields must not bind")
	}
}

func TestParseQuery_EmptyQuery(t *testing.T) {
	got, err := ParseQuery[query](url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Fields != nil || got.Pretty || got.Limit != 0 {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestParseQuery_BareFlagAndRepeats(t *testing.T) {
	got, err := ParseQuery[query](mustValues(t, "pretty&fields[catalog]=id&fields[catalog]=label"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Pretty {
		t.Fatalf("bare flag must bind as true")
	}
	if got.Fields["catalog"] != "id,label" {
		t.Fatalf("repeated values must be joined, got %q", got.Fields["catalog"])
	}
}

func TestParseQuery_BoolValues(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"pretty=1", true},
		{"pretty=yes", true},
		{"pretty=on", true},
		{"pretty=TRUE", true},
		{"pretty=0", false},
		{"pretty=false", false},
		{"pretty=Off", false},
		{"pretty=no", false},
	}
	for _, tc := range cases {
		got, err := ParseQuery[query](mustValues(t, tc.raw))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.raw, err)
		}
		if got.Pretty != tc.want || Flag(mustValues(t, tc.raw), "pretty") != tc.want {
			t.Fatalf("%s: pretty = %v, want %v", tc.raw, got.Pretty, tc.want)
		}
	}
	if Flag(mustValues(t, "sort=id"), "pretty") {
		t.Fatalf("absent flag must be false")
	}
}

func TestParseQuery_Errors(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		field string
		msg   string
	}{
		{"non integer", "page[offset]=abc", "page[offset]", "page[offset] must be an integer"},
		{"negative offset", "page[offset]=-1", "page[offset]", "page[offset] must be at least 0"},
		{"limit too large", "page[limit]=501", "page[limit]", "page[limit] must be at most 500"},
		{"bad resource", "resource=Catalog", "resource", "resource must be a resource type such as catalog or product/property"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseQuery[query](mustValues(t, tc.raw))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("want validation code, got %v", perr.CodeOf(err))
			}
			e, _ := perr.As(err)
			if e.Field() != tc.field {
				t.Fatalf("field = %q, want %q", e.Field(), tc.field)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("message = %q, want %q", err.Error(), tc.msg)
			}
		})
	}
}

func TestParseQuery_UnsupportedKind(t *testing.T) {
	type bad struct {
		F float64 `query:"f"`
	}
	_, err := ParseQuery[bad](url.Values{"f": {"1.5"}})
	if err == nil || perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestGroupAndFlatten(t *testing.T) {
	q := url.Values{
		"fields[catalog]": {"label"},
		"fields[]":        {"x"},
		"fieldsx[a]":      {"y"},
		"page[limit]":     {"5"},
		"sort":            {"-id", "label"},
	}
	g := Group(q, "fields")
	if len(g) != 1 || g["catalog"] != "label" {
		t.Fatalf("group = %v", g)
	}
	if Group(q, "filter") != nil {
		t.Fatalf("absent group must be nil")
	}
	flat := Flatten(q)
	if flat["sort"] != "-id,label" || flat["page[limit]"] != "5" {
		t.Fatalf("flatten = %v", flat)
	}
}

func TestValidate_InvalidTarget(t *testing.T) {
	err := Validate(42)
	if err == nil || perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected internal error for non struct, got %v", err)
	}
}

func TestTagNameFunc_QueryThenJSONThenField(t *testing.T) {
	type s struct {
		A int `query:"page[limit]" json:"limit" validate:"min=1"`
		B int `json:"b,omitempty" validate:"min=1"`
		C int `validate:"min=1"`
	}
	cases := []struct {
		in   s
		want string
	}{
		{s{A: 0, B: 1, C: 1}, "page[limit]"},
		{s{A: 1, B: 0, C: 1}, "b"},
		{s{A: 1, B: 1, C: 0}, "C"},
	}
	for _, tc := range cases {
		field, _ := FirstFailure(validate().Struct(tc.in))
		if field != tc.want {
			t.Fatalf("field = %q, want %q", field, tc.want)
		}
	}
}

func TestFirstFailure_ForeignError(t *testing.T) {
	field, msg := FirstFailure(errors.New("boom"))
	if field != "" || msg != "boom" {
		t.Fatalf("expected generic passthrough, got field=%q msg=%q", field, msg)
	}
	if f, m := FirstFailure(nil); f != "" || m != "" {
		t.Fatalf("nil must map to empty strings")
	}
}

func TestRegisterValidation_LastWins(t *testing.T) {
	if err := RegisterValidation("dupe_tag", func(FieldLevel) bool { return false }); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if err := RegisterValidation("dupe_tag", func(FieldLevel) bool { return true }); err != nil {
		t.Fatalf("unexpected error on second register: %v", err)
	}

	type S struct {
		N int `query:"n" validate:"dupe_tag"`
	}
	if err := Validate(S{N: 1}); err != nil {
		t.Fatalf("expected last registration to win, got %v", err)
	}
}
