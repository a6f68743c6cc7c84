package otel

import (
	"context"
	"testing"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	t.Parallel()

	shutdown, err := SetupWithConfig(context.Background(), "funding", Config{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected shutdown function")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestSetupDisabledIgnoresEndpoint(t *testing.T) {
	t.Parallel()

	cfg := Config{Endpoint: "http://localhost:4318", Enabled: false}
	shutdown, err := SetupWithConfig(context.Background(), "funding", cfg)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestSetupRequiresServiceName(t *testing.T) {
	t.Parallel()

	if _, err := SetupWithConfig(context.Background(), "  ", Config{}); err == nil {
		t.Fatal("expected service name error")
	}
}
