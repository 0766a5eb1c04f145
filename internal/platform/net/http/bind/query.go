package bind

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	perr "storefront/internal/platform/errors"
)

// falsy are the only values that bind a present bool parameter as false
var falsy = map[string]bool{"0": true, "false": true, "f": true, "off": true, "no": true, "n": true}

func truthy(raw string) bool { return !falsy[strings.ToLower(strings.TrimSpace(raw))] }

// Flag reports whether the bool parameter name is present and not falsy
func Flag(q url.Values, name string) bool {
	return q.Has(name) && truthy(strings.Join(q[name], ","))
}

// ParseQuery fills T from q using `query` tags, then validates it
//
// string, int and bool fields take the parameter of their name; repeated
// parameters are comma joined. A present bool parameter is true unless its
// value is 0, false, f, off, no or n, so ?pretty and ?pretty=yes are both true. A
// map[string]string field collects every name[key] parameter.
func ParseQuery[T any](q url.Values) (T, error) {
	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return dst, perr.Internalf("bind: %T is not a struct", dst)
	}
	rt := rv.Type()
	for i := range rt.NumField() {
		name, ok := tagName(rt.Field(i), "query")
		if !ok || !rt.Field(i).IsExported() {
			continue
		}
		if err := assign(rv.Field(i), name, q); err != nil {
			return dst, err
		}
	}
	return dst, Validate(dst)
}

func invalid(name, kind string) error {
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be %s", name, kind), name)
}

func assign(fv reflect.Value, name string, q url.Values) error {
	if fv.Kind() == reflect.Map {
		if fv.Type() != reflect.TypeOf(map[string]string(nil)) {
			return perr.Internalf("bind: unsupported map type for %s", name)
		}
		if g := Group(q, name); g != nil {
			fv.Set(reflect.ValueOf(g))
		}
		return nil
	}

	vals, ok := q[name]
	if !ok {
		return nil
	}
	raw := strings.TrimSpace(strings.Join(vals, ","))

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(strings.Join(vals, ","))
	case reflect.Int, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return invalid(name, "an integer")
		}
		fv.SetInt(n)
	case reflect.Bool:
		fv.SetBool(truthy(raw))
	default:
		return perr.Internalf("bind: unsupported field kind %s for %s", fv.Kind(), name)
	}
	return nil
}

// Group collects name[key] parameters by key; nil when there are none
func Group(q url.Values, name string) map[string]string {
	var out map[string]string
	for k, vals := range q {
		inner, ok := strings.CutPrefix(k, name+"[")
		if !ok {
			continue
		}
		inner, ok = strings.CutSuffix(inner, "]")
		if !ok || inner == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[inner] = strings.Join(vals, ",")
	}
	return out
}

// Flatten is q with repeated values comma joined
func Flatten(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k, vals := range q {
		out[k] = strings.Join(vals, ",")
	}
	return out
}
