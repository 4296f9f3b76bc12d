package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/utilkit/component"
	"github.com/kbukum/utilkit/logger"
)

// Component wraps KeyValueAccess for lifecycle management by a
// component.Registry.
type Component struct {
	cfg  Config
	log  *logger.Logger
	opts []Option

	mu sync.RWMutex
	kv *KeyValueAccess
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a Redis component. The pool is built on Start.
func NewComponent(cfg Config, log *logger.Logger, opts ...Option) *Component {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Component{cfg: cfg, log: log, opts: opts}
}

// KV returns the KeyValueAccess, or nil if the component is not started.
func (c *Component) KV() *KeyValueAccess {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv
}

// Name returns the component name.
func (c *Component) Name() string { return c.cfg.Name }

// Start builds the shard pool and verifies that every shard answers.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv != nil {
		return fmt.Errorf("redis component already started")
	}
	kv, err := New(c.cfg, c.log, c.opts...)
	if err != nil {
		return fmt.Errorf("redis start: %w", err)
	}
	if err := kv.Ping(ctx); err != nil {
		_ = kv.Close()
		return fmt.Errorf("redis start ping: %w", err)
	}
	c.kv = kv
	c.log.Info("Redis component started", map[string]interface{}{
		logger.FieldComponent: c.cfg.Name,
		"shards":              len(kv.Pool().Shards()),
	})
	return nil
}

// Stop closes the shard pool.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv == nil {
		return nil
	}
	c.log.Info("Redis component stopping", map[string]interface{}{logger.FieldComponent: c.cfg.Name})
	err := c.kv.Close()
	c.kv = nil
	return err
}

// Health pings every shard.
func (c *Component) Health(ctx context.Context) component.Health {
	kv := c.KV()
	if kv == nil {
		return component.Unhealthy(c.Name(), "redis not initialized")
	}
	if err := kv.Ping(ctx); err != nil {
		return component.Unhealthy(c.Name(), fmt.Sprintf("ping failed: %v", err))
	}
	return component.Healthy(c.Name())
}

// Describe returns a one-line summary of the shard layout.
func (c *Component) Describe() component.Description {
	eps := c.cfg.Endpoints()
	details := fmt.Sprintf("%d shards pool=%d", len(eps), c.cfg.PoolSize)
	if len(eps) > 0 {
		details = fmt.Sprintf("%s db=%d %s", eps[0].addr(), eps[0].DB, details)
	}
	return component.Description{
		Name:    c.cfg.Name,
		Type:    "redis",
		Details: details,
	}
}
