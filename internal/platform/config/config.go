// Package config reads settings from prefixed environment variables and optional YAML files
package config

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/internal/platform/logger"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

// Conf is a prefixed view over the environment, e.g. New().Prefix("STOREFRONT_API_")
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix returns a child view; prefixes concatenate
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key is the environment variable name for key under this view
func (c Conf) Key(key string) string { return c.prefix + key }

func (c Conf) get(key string) string { return strings.TrimSpace(os.Getenv(c.Key(key))) }

// MustString panics through the logger when key is unset or blank
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// may returns def for an unset key and warns, keeping def, when parse rejects the value
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	return may(c, key, def, "string", func(s string) (string, error) { return s, nil })
}

// MayInt returns the value or def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", strconv.Atoi)
}

// MayFloat64 returns the value or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, "float64", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value or def; accepts what strconv.ParseBool accepts
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration returns the value or def, e.g. 250ms, 2s, 1h
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.get(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayKV parses "k=v,k2=v2"; entries without a key are skipped with a warning
func (c Conf) MayKV(key string, def map[string]string) map[string]string {
	out := map[string]string{}
	for _, pair := range c.MayCSV(key, nil) {
		k, v, ok := strings.Cut(pair, "=")
		if k = strings.TrimSpace(k); !ok || k == "" {
			logger.Get().Warn().Str("key", c.Key(key)).Str("entry", pair).Msg("invalid key=value entry; skipped")
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayYAML decodes the file named by key over dst
// it reports false when key is unset; an empty file leaves dst untouched
func (c Conf) MayYAML(key string, dst any) (bool, error) {
	path := c.get(key)
	if path == "" {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, errors.Wrapf(err, "open %s (%s)", path, c.Key(key))
	}
	defer func() { _ = f.Close() }()

	if err := yaml.NewDecoder(f).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return false, errors.Wrapf(err, "decode %s (%s)", path, c.Key(key))
	}
	return true, nil
}
