package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
)

//go:embed openapi.json
var openapiDoc []byte

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

// Servers points the document at base unless it already names servers
func Servers(base string) SpecMutator {
	return func(spec map[string]any) {
		if _, ok := spec["servers"]; ok {
			return
		}
		spec["servers"] = []any{map[string]any{"url": base}}
	}
}

// TitleSuffix appends s to info.title
func TitleSuffix(s string) SpecMutator {
	return func(spec map[string]any) {
		if s == "" {
			return
		}
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + s
			}
		}
	}
}

func serveDocJSON(mutate ...SpecMutator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal(openapiDoc, &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		for _, m := range mutate {
			if m != nil {
				m(spec)
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}
