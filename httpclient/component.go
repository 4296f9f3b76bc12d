package httpclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/utilkit/component"
)

// Component wraps an Adapter for a component.Registry.
type Component struct {
	cfg  Config
	opts []Option

	mu      sync.RWMutex
	adapter *Adapter
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates an HTTP adapter component. The adapter is built on
// Start.
func NewComponent(cfg Config, opts ...Option) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string { return c.cfg.Name }

// Start builds the adapter.
func (c *Component) Start(_ context.Context) error {
	a, err := New(c.cfg, c.opts...)
	if err != nil {
		return fmt.Errorf("httpclient start: %w", err)
	}
	c.mu.Lock()
	c.adapter = a
	c.mu.Unlock()
	return nil
}

// Stop releases idle connections.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	a := c.adapter
	c.adapter = nil
	c.mu.Unlock()
	if a == nil {
		return nil
	}
	return a.Close(ctx)
}

// Health is healthy once the adapter is built. It does not call the
// remote service.
func (c *Component) Health(_ context.Context) component.Health {
	if c.Adapter() == nil {
		return component.Unhealthy(c.Name(), "not started")
	}
	return component.Healthy(c.Name())
}

// Describe returns the base URL and timeout.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "http-adapter",
		Details: fmt.Sprintf("%s timeout=%s", c.cfg.BaseURL, c.cfg.Timeout),
	}
}

// Adapter returns the adapter, or nil before Start.
func (c *Component) Adapter() *Adapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adapter
}
