// Package httpkit is what modules import for routing and responses
// it re-exports the platform transport so modules never reach into internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "storefront/internal/platform/net/http"
	"storefront/internal/platform/net/http/bind"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Response is produced by return style handlers
	Response = phttp.Response

	// DocOptions controls how a JSON:API document is written
	DocOptions = phttp.DocOptions
)

// MediaTypeJSONAPI is the JSON:API content type
const MediaTypeJSONAPI = phttp.MediaTypeJSONAPI

// Doc writes body as the whole JSON:API document
func Doc(status int, body any, o DocOptions) Response { return phttp.Doc(status, body, o) }

// ErrorDoc renders err as a JSON:API errors document
func ErrorDoc(r *http.Request, err error, o DocOptions) Response { return phttp.ErrorDoc(r, err, o) }

// QueryParams flattens the query string; repeated keys are comma joined
func QueryParams(r *http.Request) map[string]string { return bind.Flatten(r.URL.Query()) }

// Flag reports whether the bool query parameter name is set and not falsy
func Flag(r *http.Request, name string) bool { return bind.Flag(r.URL.Query(), name) }

// URLParam returns a path parameter such as {id}
func URLParam(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// Get mounts a GET handler whose result is wrapped in the envelope
// a returned Response is written as is
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, phttp.Handle(func(req *http.Request) Response {
		out, err := fn(req)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return phttp.OK(out)
	}))
}

// GetQuery mounts GET and HEAD for a handler fed by the validated query
// onErr renders bind failures; nil falls back to the envelope
func GetQuery[T any](r Router, path string, fn func(*http.Request, T) Response, onErr func(*http.Request, error) Response) {
	phttp.GetQuery(r, path, fn, onErr)
}

// Options mounts an OPTIONS handler
func Options(r Router, path string, fn func(*http.Request) Response) {
	r.Options(path, phttp.Handle(fn))
}
