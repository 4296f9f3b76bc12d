package testutil

import (
	"context"
	"testing"

	"github.com/kbukum/utilkit/component"
)

// TestComponent is a component whose state a test can wipe, capture
// and put back.
type TestComponent interface {
	component.Component
	Reset(ctx context.Context) error
	Snapshot(ctx context.Context) (any, error)
	Restore(ctx context.Context, snapshot any) error
}

// Start starts each component in order and stops them in reverse when
// the test finishes. A start failure aborts the test after stopping
// the components already running.
func Start(tb testing.TB, comps ...TestComponent) {
	tb.Helper()
	ctx := context.Background()
	for _, c := range comps {
		if err := c.Start(ctx); err != nil {
			tb.Fatalf("start %s: %v", c.Name(), err)
		}
		tb.Cleanup(func() {
			if err := c.Stop(context.Background()); err != nil {
				tb.Errorf("stop %s: %v", c.Name(), err)
			}
		})
	}
}

// Reset wipes each component's state.
func Reset(tb testing.TB, comps ...TestComponent) {
	tb.Helper()
	for _, c := range comps {
		if err := c.Reset(context.Background()); err != nil {
			tb.Fatalf("reset %s: %v", c.Name(), err)
		}
	}
}

// Snapshot captures c's state for a later Restore.
func Snapshot(tb testing.TB, c TestComponent) any {
	tb.Helper()
	snap, err := c.Snapshot(context.Background())
	if err != nil {
		tb.Fatalf("snapshot %s: %v", c.Name(), err)
	}
	return snap
}

// Restore puts back state captured by Snapshot.
func Restore(tb testing.TB, c TestComponent, snap any) {
	tb.Helper()
	if err := c.Restore(context.Background(), snap); err != nil {
		tb.Fatalf("restore %s: %v", c.Name(), err)
	}
}
