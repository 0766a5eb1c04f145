package jsonapi

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"
)

// node is a test Item
type node struct {
	id, typ  string
	off      bool
	attrs    map[string]any
	children []Item
	lists    []ListItem
}

func (n *node) ID() string                 { return n.id }
func (n *node) ResourceType() string       { return n.typ }
func (n *node) Attributes() map[string]any { return n.attrs }
func (n *node) Available() bool            { return !n.off }
func (n *node) Children() []Item           { return n.children }
func (n *node) ListItems() []ListItem      { return n.lists }

// ref is a test ListItem
type ref struct {
	domain string
	target Item
	attrs  map[string]any
}

func (r *ref) Domain() string             { return r.domain }
func (r *ref) RefItem() Item              { return r.target }
func (r *ref) Attributes() map[string]any { return r.attrs }
func (r *ref) Available() bool            { return true }

// queryLinks renders links as resource/id paths plus sorted extra params
func queryLinks() LinkBuilder {
	return LinkFunc(func(p map[string]string) (string, error) {
		keys := make([]string, 0, len(p))
		for k := range p {
			if k != "resource" && k != "id" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString("/jsonapi")
		if p["resource"] != "" {
			b.WriteString("/" + p["resource"])
		}
		if p["id"] != "" {
			b.WriteString("/" + p["id"])
		}
		for i, k := range keys {
			if i == 0 {
				b.WriteString("?")
			} else {
				b.WriteString("&")
			}
			b.WriteString(k + "=" + p[k])
		}
		return b.String(), nil
	})
}

func mustComposer(t *testing.T, cfg Config) *Composer {
	t.Helper()
	c, err := NewComposer(cfg)
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	return c
}

// roundTrip marshals v and decodes it into a generic map
func roundTrip(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	return out
}
