package redistest

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/utilkit/component"
	"github.com/kbukum/utilkit/testutil"
)

func TestComponent_Lifecycle(t *testing.T) {
	comp := NewComponent()
	ctx := context.Background()

	if comp.Client() != nil || comp.Addr() != "" || comp.Port() != 0 {
		t.Error("accessors should be empty before Start")
	}
	if h := comp.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("Health before Start = %q, want unhealthy", h.Status)
	}

	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := comp.Start(ctx); err == nil {
		t.Error("second Start() should fail")
	}
	if comp.Port() == 0 || comp.Host() == "" {
		t.Errorf("expected host and port, got %q %d", comp.Host(), comp.Port())
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("Health = %q, want healthy", h.Status)
	}
	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("second Stop() failed: %v", err)
	}
}

func TestComponent_ResetClearsDataAndErrors(t *testing.T) {
	comp := NewComponent()
	testutil.Start(t, comp)
	ctx := context.Background()

	comp.Client().Set(ctx, "key1", "value1", 0)
	comp.Server().SetError("LOADING")
	testutil.Reset(t, comp)

	if _, err := comp.Client().Get(ctx, "key1").Result(); err == nil {
		t.Error("Get after Reset should miss")
	}
	if err := comp.Client().Set(ctx, "key2", "v", 0).Err(); err != nil {
		t.Errorf("injected error survived Reset: %v", err)
	}
}

func TestComponent_SnapshotRestoreAllTypes(t *testing.T) {
	comp := NewComponent()
	testutil.Start(t, comp)
	ctx := context.Background()
	rdb := comp.Client()

	rdb.Set(ctx, "s", "1", 0)
	rdb.RPush(ctx, "l", "a", "b", "c")
	rdb.SAdd(ctx, "set", "x", "y")
	rdb.HSet(ctx, "h", "f1", "v1", "f2", "v2")
	rdb.ZAdd(ctx, "z", goredis.Z{Score: 3, Member: "m1"}, goredis.Z{Score: 7, Member: "m2"})

	snap := testutil.Snapshot(t, comp)

	rdb.Del(ctx, "s", "l", "set")
	rdb.HDel(ctx, "h", "f1")
	rdb.ZIncrBy(ctx, "z", 10, "m1")
	rdb.Set(ctx, "extra", "x", 0)

	testutil.Restore(t, comp, snap)

	if v, _ := rdb.Get(ctx, "s").Result(); v != "1" {
		t.Errorf("s = %q, want 1", v)
	}
	if v, _ := rdb.LRange(ctx, "l", 0, -1).Result(); len(v) != 3 || v[0] != "a" || v[2] != "c" {
		t.Errorf("l = %v", v)
	}
	if n, _ := rdb.SCard(ctx, "set").Result(); n != 2 {
		t.Errorf("set card = %d, want 2", n)
	}
	if v, _ := rdb.HGet(ctx, "h", "f1").Result(); v != "v1" {
		t.Errorf("h.f1 = %q, want v1", v)
	}
	if s, _ := rdb.ZScore(ctx, "z", "m1").Result(); s != 3 {
		t.Errorf("z.m1 = %v, want 3", s)
	}
	if n, _ := rdb.Exists(ctx, "extra").Result(); n != 0 {
		t.Error("extra should not exist after Restore")
	}
}

func TestComponent_RestoreRejectsWrongType(t *testing.T) {
	comp := NewComponent()
	testutil.Start(t, comp)
	if err := comp.Restore(context.Background(), map[string]string{}); err == nil {
		t.Fatal("expected error for foreign snapshot type")
	}
}

func TestComponent_NotStarted(t *testing.T) {
	comp := NewComponent()
	ctx := context.Background()
	if err := comp.Reset(ctx); err == nil {
		t.Error("Reset should fail before Start")
	}
	if _, err := comp.Snapshot(ctx); err == nil {
		t.Error("Snapshot should fail before Start")
	}
}
