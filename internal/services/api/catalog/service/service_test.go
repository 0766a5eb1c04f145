package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/core/jsonapi"
	perr "storefront/internal/platform/errors"
	"storefront/internal/services/api/catalog/domain"
)

type fakeLoader struct {
	nodes map[string]*domain.Node
	err   error
	calls int
}

func (f *fakeLoader) Node(_ context.Context, id string) (*domain.Node, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	n, ok := f.nodes[id]
	if !ok {
		return nil, perr.ErrNotFound
	}
	return n, nil
}

func links(params map[string]string) (string, error) {
	if params["resource"] == "broken" {
		return "", errors.New("no route")
	}
	return "/jsonapi?resource=" + params["resource"] + "&id=" + params["id"], nil
}

func newSvc(t *testing.T, l domain.Loader) *Svc {
	t.Helper()
	c, err := jsonapi.NewComposer(jsonapi.Config{
		ContentBaseURL: "https://cdn.example",
		Links:          jsonapi.LinkFunc(links),
		NewErrorID:     func() string { return "err-1" },
	})
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	prefix := "ai"
	return New(l, Config{Composer: c, Prefix: &prefix, Resources: []string{"catalog", "broken"}})
}

func sampleLoader() *fakeLoader {
	root := &domain.Node{
		NodeID: "1",
		Code:   "root",
		Window: domain.Window{Status: 1},
		Kids:   []*domain.Node{{NodeID: "2", Window: domain.Window{Status: 1}}},
		Lists: []*domain.ListRef{{
			ListID:    "10",
			RefDomain: "media",
			RefID:     "7",
			Window:    domain.Window{Status: 1},
			Ref:       &domain.Ref{RefID: "7", Domain: "media", Window: domain.Window{Status: 1}},
		}},
	}
	return &fakeLoader{nodes: map[string]*domain.Node{"1": root, "off": {NodeID: "off"}}}
}

func TestGet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       domain.GetInput
		status   int
		total    int
		withData bool
		loads    int
	}{
		{"listing", domain.GetInput{}, http.StatusOK, 0, false, 0},
		{"node", domain.GetInput{Query: domain.Query{ID: "1"}}, http.StatusOK, 1, true, 1},
		{"missing node", domain.GetInput{Query: domain.Query{ID: "404"}}, http.StatusOK, 0, false, 1},
		{"unavailable node", domain.GetInput{Query: domain.Query{ID: "off"}}, http.StatusOK, 0, false, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l := sampleLoader()
			doc, status, err := newSvc(t, l).Get(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("unexpected reject: %v", err)
			}
			if status != tc.status || doc.Meta == nil || doc.Meta.Total != tc.total {
				t.Fatalf("status=%d meta=%+v", status, doc.Meta)
			}
			if (doc.Data != nil) != tc.withData {
				t.Fatalf("data presence = %v", doc.Data != nil)
			}
			if tc.withData && (doc.Included == nil || len(doc.Included) != 1) {
				t.Fatalf("included = %v", doc.Included)
			}
			if !tc.withData && doc.Included != nil {
				t.Fatalf("included must be absent without data")
			}
			if *doc.Meta.Prefix != "ai" || doc.Meta.ContentBaseURL != "https://cdn.example" {
				t.Fatalf("meta = %+v", doc.Meta)
			}
			if l.calls != tc.loads {
				t.Fatalf("loader calls = %d, want %d", l.calls, tc.loads)
			}
		})
	}
}

func TestGet_FieldsetAndCSRF(t *testing.T) {
	t.Parallel()

	in := domain.GetInput{
		Query:  domain.Query{ID: "1", Fields: map[string]string{"catalog": "catalog.code"}},
		Params: map[string]string{"id": "1", "pretty": "1"},
		CSRF:   jsonapi.CSRF{Name: "_token", Value: "abc"},
	}
	doc, _, err := newSvc(t, sampleLoader()).Get(context.Background(), in)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(doc.Data.Attributes) != 1 || doc.Data.Attributes["catalog.code"] != "root" {
		t.Fatalf("attributes = %v", doc.Data.Attributes)
	}
	if doc.Meta.CSRF == nil || doc.Meta.CSRF.Value != "abc" {
		t.Fatalf("csrf = %+v", doc.Meta.CSRF)
	}
	if strings.Contains(doc.Links.Self, "pretty") {
		t.Fatalf("non whitelisted params must not reach the self link: %s", doc.Links.Self)
	}
}

func TestGet_UnknownResourceRejected(t *testing.T) {
	t.Parallel()

	l := sampleLoader()
	_, status, err := newSvc(t, l).Get(context.Background(), domain.GetInput{Query: domain.Query{Resource: "product", ID: "1"}})
	if status != http.StatusNotFound || !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("status=%d err=%v", status, err)
	}
	if l.calls != 0 {
		t.Fatalf("rejected requests must not load")
	}
}

func TestGet_LoaderFailure(t *testing.T) {
	t.Parallel()

	l := &fakeLoader{err: perr.DBf("connection refused")}
	doc, status, err := newSvc(t, l).Get(context.Background(), domain.GetInput{Query: domain.Query{ID: "1"}})
	if err != nil {
		t.Fatalf("failures render as documents, got %v", err)
	}
	if status != http.StatusInternalServerError || !doc.HasErrors() {
		t.Fatalf("status=%d doc=%+v", status, doc)
	}
	if doc.Data != nil || doc.Meta != nil {
		t.Fatalf("errors must not coexist with data or meta")
	}
	e := doc.Errors[0]
	if e.ID != "err-1" || !strings.Contains(e.Title, "connection refused") || !strings.Contains(e.Detail, "service.go") {
		t.Fatalf("error object = %+v", e)
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	c, _ := jsonapi.NewComposer(jsonapi.Config{Links: jsonapi.LinkFunc(links)})
	svc := New(sampleLoader(), Config{Composer: c, Resources: []string{"catalog", "product"}})
	doc, status := svc.Options(context.Background())
	if status != http.StatusOK || doc.Meta == nil {
		t.Fatalf("status=%d doc=%+v", status, doc)
	}
	if doc.Meta.Resources["product"] != "/jsonapi?resource=product&id=" || doc.Meta.Prefix != nil {
		t.Fatalf("meta = %+v", doc.Meta)
	}

	failing := newSvc(t, sampleLoader())
	doc, status = failing.Options(context.Background())
	if status != http.StatusInternalServerError || !doc.HasErrors() {
		t.Fatalf("link failure must produce an errors document, got %d", status)
	}
}

func TestNew_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic without composer")
		}
	}()
	New(sampleLoader(), Config{})
}

func TestGet_PagesChildren(t *testing.T) {
	t.Parallel()

	root := &domain.Node{NodeID: "1", Window: domain.Window{Status: 1}}
	for _, id := range []string{"2", "3", "4"} {
		root.Kids = append(root.Kids, &domain.Node{NodeID: id, Window: domain.Window{Status: 1}})
	}
	l := &fakeLoader{nodes: map[string]*domain.Node{"1": root}}

	in := domain.GetInput{Query: domain.Query{ID: "1", Offset: 1, Limit: 1}}
	doc, status, err := newSvc(t, l).Get(context.Background(), in)
	if err != nil || status != http.StatusOK {
		t.Fatalf("Get: status=%d err=%v", status, err)
	}
	got := doc.Data.Relationships["catalog"].Data
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("catalog linkage = %+v, want only 3", got)
	}
	if len(root.Kids) != 3 {
		t.Fatalf("loaded node must not be modified")
	}
}
