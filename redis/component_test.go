package redis

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/utilkit/component"
	"github.com/kbukum/utilkit/logger"
)

func TestComponent_Lifecycle(t *testing.T) {
	srv := newTestServer(t)
	comp := NewComponent(Config{Host: srv.Host(), Port: srv.Port()}, logger.Nop())
	ctx := context.Background()

	if comp.KV() != nil {
		t.Error("KV() should be nil before Start")
	}
	if h := comp.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("Health before Start = %q", h.Status)
	}

	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := comp.Start(ctx); err == nil {
		t.Error("second Start should fail")
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("Health = %+v", h)
	}
	if !comp.KV().SetString(ctx, "k", "v").Value {
		t.Error("SetString through component failed")
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if comp.KV() != nil {
		t.Error("KV() should be nil after Stop")
	}
	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}
}

func TestComponent_HealthUnhealthyWhenServerDown(t *testing.T) {
	srv := newTestServer(t)
	comp := NewComponent(Config{Host: srv.Host(), Port: srv.Port()}, logger.Nop())
	ctx := context.Background()
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer comp.Stop(ctx)

	srv.Server().Close()
	h := comp.Health(ctx)
	if h.Status != component.StatusUnhealthy || !strings.Contains(h.Message, "ping failed") {
		t.Errorf("Health = %+v", h)
	}
}

func TestComponent_StartFailures(t *testing.T) {
	ctx := context.Background()

	if err := NewComponent(Config{DB: 99}, logger.Nop()).Start(ctx); err == nil || !strings.Contains(err.Error(), "redis start") {
		t.Errorf("expected config error, got %v", err)
	}

	srv := newTestServer(t)
	host, port := srv.Host(), srv.Port()
	srv.Server().Close()
	if err := NewComponent(Config{Host: host, Port: port}, logger.Nop()).Start(ctx); err == nil || !strings.Contains(err.Error(), "ping") {
		t.Errorf("expected ping error, got %v", err)
	}
}

func TestComponent_Describe(t *testing.T) {
	comp := NewComponent(Config{Name: "cache", Host: "redis.local", Port: 6380, DB: 2}, nil)
	d := comp.Describe()
	if d.Name != "cache" || d.Type != "redis" {
		t.Errorf("unexpected description: %+v", d)
	}
	if !strings.Contains(d.Details, "redis.local:6380 db=2") || !strings.Contains(d.Details, "3 shards") {
		t.Errorf("Details = %q", d.Details)
	}
	if comp.Name() != "cache" {
		t.Errorf("Name = %q", comp.Name())
	}
}

func TestComponent_InRegistry(t *testing.T) {
	srv := newTestServer(t)
	reg := component.NewRegistry(logger.Nop())
	comp := NewComponent(Config{Host: srv.Host(), Port: srv.Port()}, logger.Nop())
	if err := reg.Register(comp); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	ctx := context.Background()
	if err := reg.StartAll(ctx); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	health := reg.HealthAll(ctx)
	if len(health) != 1 || health[0].Status != component.StatusHealthy {
		t.Errorf("HealthAll = %+v", health)
	}
	if descs := reg.Describe(); len(descs) != 1 || descs[0].Type != "redis" {
		t.Errorf("Describe = %+v", descs)
	}
	if err := reg.StopAll(ctx); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
}
