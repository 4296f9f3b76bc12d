package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kbukum/utilkit/component"
	"github.com/kbukum/utilkit/logger"
)

func TestComponent_Lifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	comp := NewComponent(Config{Name: "test-http", BaseURL: srv.URL}, WithLogger(logger.Nop()))
	ctx := context.Background()

	if comp.Adapter() != nil {
		t.Error("Adapter() should be nil before Start()")
	}
	if h := comp.Health(ctx); h.Status != component.StatusUnhealthy || h.Message != "not started" {
		t.Errorf("Health before Start = %+v", h)
	}

	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if comp.Adapter() == nil {
		t.Fatal("Adapter() should be set after Start()")
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy || h.Name != "test-http" {
		t.Errorf("Health after Start = %+v", h)
	}

	resp, err := comp.Adapter().Do(ctx, Request{Method: http.MethodGet, Path: "/ping"})
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("Do() = %v, %v", resp, err)
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if comp.Adapter() != nil {
		t.Error("Adapter() should be nil after Stop()")
	}
	if err := comp.Stop(ctx); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestComponent_Defaults(t *testing.T) {
	comp := NewComponent(Config{BaseURL: "https://api.example.com"})
	if comp.Name() != "http" {
		t.Errorf("Name() = %q, want http", comp.Name())
	}
	desc := comp.Describe()
	if desc.Type != "http-adapter" || desc.Details != "https://api.example.com timeout=30s" {
		t.Errorf("Describe() = %+v", desc)
	}
}

func TestComponent_StartInvalidConfig(t *testing.T) {
	comp := NewComponent(Config{BaseURL: "::not-a-url"})
	err := comp.Start(context.Background())
	if err == nil || !strings.HasPrefix(err.Error(), "httpclient start:") {
		t.Fatalf("expected start error, got %v", err)
	}
	if comp.Adapter() != nil {
		t.Error("Adapter() should stay nil after a failed Start()")
	}
}

func TestComponent_InRegistry(t *testing.T) {
	reg := component.NewRegistry(logger.Nop())
	if err := reg.Register(NewComponent(Config{Name: "billing", BaseURL: "http://127.0.0.1:1"})); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := reg.StartAll(ctx); err != nil {
		t.Fatalf("StartAll() error = %v", err)
	}
	defer reg.StopAll(ctx)

	health := reg.HealthAll(ctx)
	if len(health) != 1 || health[0].Status != component.StatusHealthy {
		t.Errorf("HealthAll() = %+v", health)
	}
	descs := reg.Describe()
	if len(descs) != 1 || descs[0].Name != "billing" {
		t.Errorf("Describe() = %+v", descs)
	}
}
