package http

import (
	"net/http"

	"storefront/internal/platform/net/http/bind"
)

// QueryHandler binds the query string into T and hands it to fn
// bind failures go through onErr, or Error when onErr is nil
func QueryHandler[T any](fn func(*http.Request, T) Response, onErr func(*http.Request, error) Response) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseQuery[T](r.URL.Query())
		if err != nil {
			if onErr != nil {
				return onErr(r, err)
			}
			return Error(err)
		}
		return fn(r, in)
	})
}

// GetQuery mounts a query bound handler for GET and HEAD
func GetQuery[T any](r Router, path string, h func(*http.Request, T) Response, onErr func(*http.Request, error) Response) {
	fn := QueryHandler(h, onErr)
	r.Get(path, fn)
	r.Head(path, fn)
}
