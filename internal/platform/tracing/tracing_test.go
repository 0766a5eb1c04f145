package tracing

import (
	"context"
	"testing"

	"storefront/internal/platform/config"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("TRC_TRACE_ENDPOINT", "http://collector:4318")
	t.Setenv("TRC_TRACE_SAMPLE", "0.25")

	c := FromConfig(config.New().Prefix("TRC_"), "storefront-api")
	if c.Service != "storefront-api" || c.Endpoint != "http://collector:4318" || c.Sample != 0.25 {
		t.Fatalf("config = %+v", c)
	}

	d := FromConfig(config.New().Prefix("TRCNONE_"), "x")
	if d.Endpoint != "" || d.Sample != 1 {
		t.Fatalf("defaults = %+v", d)
	}
}

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Service: "storefront-api"})
	if err != nil || shutdown == nil {
		t.Fatalf("Setup = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetup_WithEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Service: "storefront-api", Endpoint: "http://127.0.0.1:1", Sample: 2})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	// nothing was recorded so the flush does not reach the collector
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	for in, want := range map[float64]float64{-1: 0, 0.5: 0.5, 3: 1} {
		if got := clamp(in); got != want {
			t.Fatalf("clamp(%v) = %v, want %v", in, got, want)
		}
	}
}
