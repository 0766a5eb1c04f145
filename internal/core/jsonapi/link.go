package jsonapi

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// LinkBuilder turns route parameters into a URL
// implementations must be deterministic and safe for concurrent use
// the resource type travels in params["resource"]
type LinkBuilder interface {
	BuildLink(params map[string]string) (string, error)
}

// LinkFunc adapts a plain function to LinkBuilder
type LinkFunc func(params map[string]string) (string, error)

// BuildLink calls f
func (f LinkFunc) BuildLink(params map[string]string) (string, error) { return f(params) }

// URLConfig describes where links point
type URLConfig struct {
	// BaseURL is the scheme and host plus optional path, e.g. https://shop.example/api
	BaseURL    string
	Target     string
	Controller string
	Action     string
	// Config is merged into every query; request params win on conflict
	Config map[string]string
}

// URLBuilder is the default LinkBuilder
// it renders <base>/<target>/<controller>/<action>?<sorted query>
type URLBuilder struct {
	base   *url.URL
	path   string
	static map[string]string
}

// NewURLBuilder validates cfg and returns a builder
func NewURLBuilder(cfg URLConfig) (*URLBuilder, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "jsonapi: invalid base url %q", cfg.BaseURL)
	}
	if base.RawQuery != "" || base.Fragment != "" {
		return nil, errors.Errorf("jsonapi: base url %q must not carry a query or fragment", cfg.BaseURL)
	}

	segs := make([]string, 0, 3)
	for _, s := range []string{cfg.Target, cfg.Controller, cfg.Action} {
		if s = strings.Trim(s, "/ "); s != "" {
			segs = append(segs, s)
		}
	}

	static := make(map[string]string, len(cfg.Config))
	for k, v := range cfg.Config {
		static[k] = v
	}
	return &URLBuilder{base: base, path: strings.Join(segs, "/"), static: static}, nil
}

// BuildLink renders params as a sorted query on the configured route
func (b *URLBuilder) BuildLink(params map[string]string) (string, error) {
	q := make(url.Values, len(params)+len(b.static))
	for k, v := range b.static {
		q.Set(k, v)
	}
	for k, v := range params {
		if strings.TrimSpace(k) == "" {
			return "", errors.New("jsonapi: empty link parameter name")
		}
		q.Set(k, v)
	}

	u := *b.base
	if b.path != "" {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + b.path
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
