package redistest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/utilkit/component"
	"github.com/kbukum/utilkit/testutil"
)

var errNotStarted = errors.New("redistest: server not started")

// running is the state that exists between Start and Stop.
type running struct {
	srv    *miniredis.Miniredis
	client *goredis.Client
}

// Component serves Redis from memory with miniredis. Accessors return
// zero values while it is stopped.
type Component struct {
	mu  sync.RWMutex
	run *running
}

var (
	_ component.Component    = (*Component)(nil)
	_ testutil.TestComponent = (*Component)(nil)
)

func NewComponent() *Component { return &Component{} }

func (c *Component) Name() string { return "redis-test" }

func (c *Component) current() *running {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run
}

// Server exposes miniredis for error injection and clock control.
func (c *Component) Server() *miniredis.Miniredis {
	if r := c.current(); r != nil {
		return r.srv
	}
	return nil
}

// Client is a plain go-redis client on the server's default database.
func (c *Component) Client() *goredis.Client {
	if r := c.current(); r != nil {
		return r.client
	}
	return nil
}

func (c *Component) Addr() string {
	if r := c.current(); r != nil {
		return r.srv.Addr()
	}
	return ""
}

func (c *Component) Host() string {
	if r := c.current(); r != nil {
		return r.srv.Host()
	}
	return ""
}

func (c *Component) Port() int {
	r := c.current()
	if r == nil {
		return 0
	}
	port, _ := strconv.Atoi(r.srv.Port())
	return port
}

func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run != nil {
		return errors.New("redistest: already started")
	}
	srv, err := miniredis.Run()
	if err != nil {
		return fmt.Errorf("redistest: run miniredis: %w", err)
	}
	c.run = &running{srv: srv, client: goredis.NewClient(&goredis.Options{Addr: srv.Addr()})}
	return nil
}

// Stop is a no-op when the server is not running.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	r := c.run
	c.run = nil
	c.mu.Unlock()
	if r == nil {
		return nil
	}
	err := r.client.Close()
	r.srv.Close()
	return err
}

func (c *Component) Health(_ context.Context) component.Health {
	if c.current() == nil {
		return component.Unhealthy(c.Name(), "not started")
	}
	return component.Healthy(c.Name())
}

// Reset drops every key and clears an error set with Server().SetError.
func (c *Component) Reset(_ context.Context) error {
	r := c.current()
	if r == nil {
		return errNotStarted
	}
	r.srv.SetError("")
	r.srv.FlushAll()
	return nil
}

// Snapshot returns a *State holding every key of the default database.
func (c *Component) Snapshot(_ context.Context) (any, error) {
	r := c.current()
	if r == nil {
		return nil, errNotStarted
	}
	return capture(r.srv), nil
}

// Restore flushes the server and loads a *State taken by Snapshot.
func (c *Component) Restore(_ context.Context, snap any) error {
	r := c.current()
	if r == nil {
		return errNotStarted
	}
	st, ok := snap.(*State)
	if !ok {
		return fmt.Errorf("redistest: snapshot is %T, want *State", snap)
	}
	r.srv.FlushAll()
	return st.load(r.srv)
}
