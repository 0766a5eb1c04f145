package http

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"strings"

	"storefront/internal/platform/logger"

	"github.com/zeebo/xxh3"
)

// MediaTypeJSONAPI is the content type of JSON:API documents
const MediaTypeJSONAPI = "application/vnd.api+json"

// DocOptions controls how a document body is written
type DocOptions struct {
	// Pretty indents the body
	Pretty bool
	// Allow is sent as the Allow header when non empty
	Allow []string
	// ETag hashes 200 bodies and answers a matching If-None-Match with 304
	ETag bool
}

type encodeFailure struct {
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// WriteDocument writes body as a JSON:API document with the given status
func WriteDocument(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, body any, o DocOptions) {
	buf, err := marshalDoc(body, o.Pretty)
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("jsonapi document encoding failed")
		var fb encodeFailure
		fb.Errors = append(fb.Errors, struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		}{Title: "document encoding failed", Detail: err.Error()})
		buf, _ = json.Marshal(fb)
		status = stdhttp.StatusInternalServerError
	}

	h := w.Header()
	h.Set("Content-Type", MediaTypeJSONAPI)
	if len(o.Allow) > 0 {
		h.Set("Allow", strings.Join(o.Allow, ", "))
	}
	if o.ETag && status == stdhttp.StatusOK {
		tag := ETag(buf)
		h.Set("ETag", tag)
		if etagMatch(r.Header.Get("If-None-Match"), tag) {
			w.WriteHeader(stdhttp.StatusNotModified)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

// ETag returns a strong entity tag for b
func ETag(b []byte) string { return fmt.Sprintf(`"%016x"`, xxh3.Hash(b)) }

func marshalDoc(body any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(body, "", "  ")
	}
	return json.Marshal(body)
}

// etagMatch implements the weak comparison used for If-None-Match
func etagMatch(header, tag string) bool {
	for _, c := range strings.Split(header, ",") {
		c = strings.TrimSpace(c)
		if c == "*" {
			return true
		}
		if strings.TrimPrefix(c, "W/") == tag {
			return true
		}
	}
	return false
}
