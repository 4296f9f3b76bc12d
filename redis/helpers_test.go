package redis

import (
	"bytes"
	"testing"

	"github.com/kbukum/utilkit/logger"
	"github.com/kbukum/utilkit/redis/redistest"
	"github.com/kbukum/utilkit/testutil"
)

type testState struct {
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

// newTestServer starts an in-memory Redis stopped by t.Cleanup.
func newTestServer(t *testing.T) *redistest.Component {
	t.Helper()
	srv := redistest.NewComponent()
	testutil.Start(t, srv)
	return srv
}

// newTestKV returns a KeyValueAccess on db 0 of a fresh in-memory Redis.
func newTestKV(t *testing.T) (*KeyValueAccess, *redistest.Component) {
	t.Helper()
	srv := newTestServer(t)
	kv, err := Init(srv.Host(), srv.Port(), 0, logger.Nop())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv, srv
}

func newBufferedLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "redis-test", buf)
}
