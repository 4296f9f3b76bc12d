package component

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kbukum/utilkit/logger"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() Description {
	return Description{Type: "redis", Details: "localhost:6379 db=0"}
}

func newTestRegistry() *Registry {
	return NewRegistry(logger.Nop())
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry()
	if err := r.Register(&mockComponent{name: "redis"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	err := r.Register(&mockComponent{name: "redis"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestGet(t *testing.T) {
	r := newTestRegistry()
	c := &mockComponent{name: "http"}
	r.Register(c)
	if r.Get("http") != c {
		t.Error("expected registered component")
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unknown component")
	}
	if len(r.All()) != 1 {
		t.Errorf("All() = %d entries, want 1", len(r.All()))
	}
}

func TestStartStopOrder(t *testing.T) {
	var started, stopped []string
	r := newTestRegistry()
	for _, name := range []string{"a", "b", "c"} {
		r.Register(&mockComponent{name: name, startOrder: &started, stopOrder: &stopped})
	}

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if strings.Join(started, ",") != "a,b,c" {
		t.Errorf("start order = %v", started)
	}
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if strings.Join(stopped, ",") != "c,b,a" {
		t.Errorf("stop order = %v", stopped)
	}
}

func TestStartAllErrorRollsBack(t *testing.T) {
	var started, stopped []string
	r := newTestRegistry()
	r.Register(&mockComponent{name: "a", startOrder: &started, stopOrder: &stopped})
	r.Register(&mockComponent{name: "b", startErr: fmt.Errorf("dial refused"), startOrder: &started, stopOrder: &stopped})
	r.Register(&mockComponent{name: "c", startOrder: &started, stopOrder: &stopped})

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to start b") {
		t.Fatalf("expected start error for b, got %v", err)
	}
	if strings.Join(started, ",") != "a,b" {
		t.Errorf("start order = %v", started)
	}
	if strings.Join(stopped, ",") != "a" {
		t.Errorf("expected only a to be stopped, got %v", stopped)
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := newTestRegistry()
	r.Register(&mockComponent{name: "a", stopErr: fmt.Errorf("close failed")})
	r.Register(&mockComponent{name: "b"})
	ctx := context.Background()
	r.StartAll(ctx)

	err := r.StopAll(ctx)
	if err == nil || !strings.Contains(err.Error(), "failed to stop a") {
		t.Fatalf("expected stop error, got %v", err)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	var stopped []string
	r := newTestRegistry()
	r.Register(&mockComponent{name: "a", stopOrder: &stopped})
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(stopped) != 0 {
		t.Errorf("unstarted component was stopped: %v", stopped)
	}
}

func TestHealthAll(t *testing.T) {
	r := newTestRegistry()
	r.Register(&mockComponent{name: "a", health: Health{Name: "a", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "b", health: Health{Name: "b", Status: StatusUnhealthy, Message: "ping failed"}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy || results[1].Status != StatusUnhealthy {
		t.Errorf("unexpected health: %+v", results)
	}
}

func TestDescribe(t *testing.T) {
	r := newTestRegistry()
	r.Register(&mockComponent{name: "plain"})
	r.Register(&describedComponent{mockComponent{name: "redis"}})

	descs := r.Describe()
	if len(descs) != 1 {
		t.Fatalf("expected 1 description, got %d", len(descs))
	}
	if descs[0].Name != "redis" || descs[0].Type != "redis" {
		t.Errorf("unexpected description: %+v", descs[0])
	}
}

func TestHealthString(t *testing.T) {
	tests := []struct {
		h    Health
		want string
		ok   bool
	}{
		{Healthy("redis"), "redis=healthy", true},
		{Unhealthy("http", "not started"), "http=unhealthy(not started)", false},
		{Health{Name: "x", Status: StatusDegraded}, "x=degraded", false},
	}
	for _, tc := range tests {
		if got := tc.h.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
		if tc.h.OK() != tc.ok {
			t.Errorf("%s: OK() = %v, want %v", tc.want, tc.h.OK(), tc.ok)
		}
	}
}
