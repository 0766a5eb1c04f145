package jsonapi

import (
	"net/url"
	"strings"
)

// Fieldset maps a resource type to its allowed attribute keys
// a type without an entry is not filtered at all
type Fieldset map[string]map[string]struct{}

// ParseFieldset builds a Fieldset from type -> comma separated key lists
// tokens are trimmed, empty tokens dropped and duplicates collapsed
func ParseFieldset(raw map[string]string) Fieldset {
	fs := make(Fieldset, len(raw))
	for typ, list := range raw {
		typ = strings.TrimSpace(typ)
		if typ == "" {
			continue
		}
		keys := make(map[string]struct{})
		for _, tok := range strings.Split(list, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				keys[tok] = struct{}{}
			}
		}
		fs[typ] = keys
	}
	return fs
}

// ParseFieldsetQuery reads fields[<type>]=a,b parameters from a query
// repeated parameters for the same type are joined
func ParseFieldsetQuery(q url.Values) Fieldset {
	raw := map[string]string{}
	for k, vs := range q {
		typ, ok := bracketKey(k, "fields")
		if !ok {
			continue
		}
		raw[typ] = strings.Join(vs, ",")
	}
	return ParseFieldset(raw)
}

// Allows reports whether key survives filtering for typ
func (f Fieldset) Allows(typ, key string) bool {
	keys, ok := f[typ]
	if !ok {
		return true
	}
	_, ok = keys[key]
	return ok
}

// Filter returns attrs restricted to the allow-set of typ
// values are never touched; without an allow-set attrs is returned as is
func (f Fieldset) Filter(typ string, attrs map[string]any) map[string]any {
	keys, ok := f[typ]
	if !ok {
		if attrs == nil {
			return map[string]any{}
		}
		return attrs
	}
	out := make(map[string]any, len(keys))
	for k, v := range attrs {
		if _, keep := keys[k]; keep {
			out[k] = v
		}
	}
	return out
}

// bracketKey splits "name[sub]" and reports sub when name matches
func bracketKey(k, name string) (string, bool) {
	if !strings.HasPrefix(k, name+"[") || !strings.HasSuffix(k, "]") {
		return "", false
	}
	sub := k[len(name)+1 : len(k)-1]
	if sub == "" {
		return "", false
	}
	return sub, true
}
