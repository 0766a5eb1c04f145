// Package http is the transport layer: the router seam, the server and the response writers
//
// meta endpoints answer with an Envelope; JSON:API endpoints write their
// document as the whole body through Doc and WriteDocument
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "storefront/internal/platform/errors"
	pnet "storefront/internal/platform/net"
)

// Envelope wraps every non JSON:API body
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, rid string) Envelope {
	return Envelope{StatusCode: status, Status: stdhttp.StatusText(status), RequestID: rid}
}

// JSON encodes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return style handlers produce
// a zero Status means 200
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	doc *DocOptions
}

// Handle adapts a return style handler
func Handle(h func(*stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).writeTo(w, r) }
}

func (resp Response) writeTo(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		w.Header()[k] = append(w.Header()[k], vv...)
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}

	switch body := resp.Body.(type) {
	case nil:
		if resp.doc == nil && status == stdhttp.StatusNoContent {
			w.WriteHeader(status)
			return
		}
	case error:
		if resp.doc == nil {
			status = perr.HTTPStatus(body)
			env := envelope(status, pnet.RequestID(r.Context()))
			wire := perr.WireFrom(body)
			env.Code, env.Error = wire.Code, wire.Message
			JSON(w, status, env)
			return
		}
	}

	if resp.doc != nil {
		WriteDocument(w, r, status, resp.Body, *resp.doc)
		return
	}
	env := envelope(status, pnet.RequestID(r.Context()))
	env.Data = resp.Body
	JSON(w, status, env)
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Body: data} }

// NoContent is an empty 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error is rendered as an error envelope with the status its code maps to
func Error(err error) Response { return Response{Body: err} }

// Doc writes body as the whole JSON:API document
func Doc(status int, body any, o DocOptions) Response {
	return Response{Status: status, Body: body, doc: &o}
}

// ErrorDoc renders err as a JSON:API errors document; entries carry the request id
func ErrorDoc(r *stdhttp.Request, err error, o DocOptions) Response {
	status, body := pnet.Errors(err, pnet.RequestID(r.Context()))
	return Doc(status, body, o)
}
