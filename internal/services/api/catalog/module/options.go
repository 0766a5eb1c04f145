package module

import (
	"time"

	"storefront/internal/core/jsonapi"
	"storefront/internal/platform/config"
	"storefront/internal/platform/logger"
	str "storefront/internal/platform/strings"
)

// DefaultResources are listed by OPTIONS when nothing is configured
var DefaultResources = []string{"attribute", "catalog", "product", "stock"}

// Options controls how catalog documents are rendered and where their links point
type Options struct {
	// Prefix is echoed as meta.prefix; nil renders null
	Prefix         *string       `yaml:"-"`
	ContentBaseURL string        `yaml:"content-baseurl"`
	URL            URLOptions    `yaml:"url"`
	Resources      []string      `yaml:"resources"`
	CSRFCookie     string        `yaml:"csrf-cookie"`
	CacheTTL       time.Duration `yaml:"-"`
	CacheCleanup   time.Duration `yaml:"-"`

	// StatementTimeout caps each catalog query, zero keeps the server default
	StatementTimeout time.Duration `yaml:"-"`
}

// URLOptions names the route links are built against
type URLOptions struct {
	BaseURL    string            `yaml:"base"`
	Target     string            `yaml:"target"`
	Controller string            `yaml:"controller"`
	Action     string            `yaml:"action"`
	Config     map[string]string `yaml:"config"`
}

// URLConfig returns the link builder configuration
func (o Options) URLConfig() jsonapi.URLConfig {
	return jsonapi.URLConfig{
		BaseURL:    o.URL.BaseURL,
		Target:     o.URL.Target,
		Controller: o.URL.Controller,
		Action:     o.URL.Action,
		Config:     o.URL.Config,
	}
}

// FromConfig reads JSONAPI_* values from process config/env
// a YAML file named by JSONAPI_FILE overrides the env values it sets
func FromConfig(cfg config.Conf) Options {
	jc := cfg.Prefix("JSONAPI_")
	o := Options{
		ContentBaseURL: jc.MayString("CONTENT_BASEURL", ""),
		URL: URLOptions{
			BaseURL:    jc.MayString("URL_BASE", "/api/v1"),
			Target:     jc.MayString("URL_TARGET", ""),
			Controller: jc.MayString("URL_CONTROLLER", "jsonapi"),
			Action:     jc.MayString("URL_ACTION", ""),
			Config:     jc.MayKV("URL_CONFIG", nil),
		},
		Resources:    jc.MayCSV("RESOURCES", DefaultResources),
		CSRFCookie:   jc.MayString("CSRF_COOKIE", ""),
		CacheTTL:     jc.MayDuration("CACHE_TTL", 10*time.Minute),
		CacheCleanup: jc.MayDuration("CACHE_CLEANUP", 15*time.Minute),

		StatementTimeout: jc.MayDuration("STATEMENT_TIMEOUT", 5*time.Second),
	}
	o.Prefix = str.Ptr(jc.MayString("PREFIX", ""))

	if _, err := jc.MayYAML("FILE", &o); err != nil {
		logger.Get().Panic().Err(err).Msg("jsonapi settings file")
	}
	o.Resources = str.IfEmpty(o.Resources, DefaultResources)
	return o
}
