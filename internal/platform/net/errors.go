package net

import (
	"net/http"
	"strconv"

	perr "storefront/internal/platform/errors"
)

// HTTPStatus maps a project error to http status
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}

// ErrorEntry is one member of a JSON:API errors array
type ErrorEntry struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// ErrorWire is an errors-only JSON:API document for failures raised outside a composer
type ErrorWire struct {
	Errors []ErrorEntry `json:"errors"`
}

// Errors maps err into an errors document; the request id becomes the occurrence id
func Errors(err error, reqID string) (int, ErrorWire) {
	status := HTTPStatus(err)
	if err == nil {
		status = http.StatusInternalServerError
		err = perr.Internalf("unknown error")
	}
	w := perr.WireFrom(err)
	return status, ErrorWire{Errors: []ErrorEntry{{
		ID:     reqID,
		Status: strconv.Itoa(status),
		Code:   w.Code.String(),
		Title:  http.StatusText(status),
		Detail: w.Message,
	}}}
}
