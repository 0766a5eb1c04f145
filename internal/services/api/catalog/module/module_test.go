package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"storefront/internal/modkit"
	"storefront/internal/modkit/repokit"
	"storefront/internal/platform/config"
	phttp "storefront/internal/platform/net/http"
	kit "storefront/internal/platform/testkit"
	catalogdom "storefront/internal/services/api/catalog/domain"

	"github.com/go-chi/chi/v5"
)

type nopTx struct{ repokit.Queryer }

func (nopTx) Tx(_ context.Context, _ func(q repokit.Queryer) error) error { return nil }

func TestFromConfig_Defaults(t *testing.T) {
	o := FromConfig(config.New().Prefix("CATDEF_"))

	if o.Prefix != nil || o.ContentBaseURL != "" || o.CSRFCookie != "" {
		t.Fatalf("unexpected options %+v", o)
	}
	if o.URL.BaseURL != "/api/v1" || o.URL.Controller != "jsonapi" {
		t.Fatalf("url = %+v", o.URL)
	}
	if !reflect.DeepEqual(o.Resources, DefaultResources) {
		t.Fatalf("resources = %v", o.Resources)
	}
	if o.CacheTTL != 10*time.Minute || o.CacheCleanup != 15*time.Minute || o.StatementTimeout != 5*time.Second {
		t.Fatalf("cache = %v/%v", o.CacheTTL, o.CacheCleanup)
	}
}

func TestFromConfig_Env(t *testing.T) {
	t.Setenv("CATENV_JSONAPI_PREFIX", "ai")
	t.Setenv("CATENV_JSONAPI_CONTENT_BASEURL", "https://cdn.example")
	t.Setenv("CATENV_JSONAPI_URL_CONFIG", "site=main, lang=en")
	t.Setenv("CATENV_JSONAPI_RESOURCES", "catalog,product")
	t.Setenv("CATENV_JSONAPI_CACHE_TTL", "0s")

	o := FromConfig(config.New().Prefix("CATENV_"))
	if o.Prefix == nil || *o.Prefix != "ai" || o.ContentBaseURL != "https://cdn.example" {
		t.Fatalf("options = %+v", o)
	}
	if o.URL.Config["site"] != "main" || o.URL.Config["lang"] != "en" {
		t.Fatalf("url config = %v", o.URL.Config)
	}
	if !reflect.DeepEqual(o.Resources, []string{"catalog", "product"}) || o.CacheTTL != 0 {
		t.Fatalf("options = %+v", o)
	}
	if uc := o.URLConfig(); uc.Controller != "jsonapi" || uc.Config["site"] != "main" {
		t.Fatalf("url config = %+v", uc)
	}
}

func TestFromConfig_YAMLOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jsonapi.yaml")
	body := `content-baseurl: https://files.example
csrf-cookie: XSRF-TOKEN
url:
  base: https://shop.example
  target: shop
  config:
    absoluteUri: "1"
resources: [catalog]
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATYML_JSONAPI_CONTENT_BASEURL", "https://env.example")
	t.Setenv("CATYML_JSONAPI_FILE", path)

	o := FromConfig(config.New().Prefix("CATYML_"))
	if o.ContentBaseURL != "https://files.example" || o.CSRFCookie != "XSRF-TOKEN" {
		t.Fatalf("options = %+v", o)
	}
	if o.URL.BaseURL != "https://shop.example" || o.URL.Target != "shop" || o.URL.Controller != "jsonapi" {
		t.Fatalf("url = %+v", o.URL)
	}
	if o.URL.Config["absoluteUri"] != "1" || !reflect.DeepEqual(o.Resources, []string{"catalog"}) {
		t.Fatalf("options = %+v", o)
	}
}

func TestFromConfig_MissingFilePanics(t *testing.T) {
	t.Setenv("CATBAD_JSONAPI_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	kit.MustPanic(t, func() { FromConfig(config.New().Prefix("CATBAD_")) })
}

func TestNew_RequiresPostgres(t *testing.T) {
	kit.MustPanic(t, func() { New(modkit.Deps{Cfg: config.New().Prefix("CATNOPG_")}) })
}

func TestNew_MountsRoutes(t *testing.T) {
	t.Setenv("CATMOD_JSONAPI_CSRF_COOKIE", "XSRF-TOKEN")

	m := New(modkit.Deps{Cfg: config.New().Prefix("CATMOD_"), PG: nopTx{}})
	if m.Name() != "catalog" || m.Prefix() != "/jsonapi" {
		t.Fatalf("name=%q prefix=%q", m.Name(), m.Prefix())
	}
	if len(m.(*Module).Middlewares()) != 2 {
		t.Fatalf("expected tracing and csrf middlewares")
	}
	if _, ok := m.Ports().(catalogdom.ServicePort); !ok {
		t.Fatalf("ports = %T", m.Ports())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/jsonapi/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("OPTIONS code=%d body=%s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	for _, want := range []string{`"resources"`, `/api/v1/jsonapi?resource=product`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %s missing %s", body, want)
		}
	}

	rr = httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jsonapi/catalog", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"total":0`) {
		t.Fatalf("listing code=%d body=%s", rr.Code, rr.Body.String())
	}
}
