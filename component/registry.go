package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/utilkit/logger"
)

// stopBudget bounds each component's Stop.
const stopBudget = 10 * time.Second

type slot struct {
	c  Component
	up bool
}

// Registry starts components in registration order and stops them in
// reverse. Register dependencies before their dependents.
type Registry struct {
	mu     sync.RWMutex
	slots  []*slot
	byName map[string]*slot
	log    *logger.Logger
}

// NewRegistry returns an empty registry. A nil log falls back to the
// global logger.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.WithComponent("registry")
	}
	return &Registry{byName: map[string]*slot{}, log: log}
}

// Register appends c. Names must be unique.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("component %s already registered", name)
	}
	s := &slot{c: c}
	r.slots = append(r.slots, s)
	r.byName[name] = s
	r.log.Debug("Component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts every component. When one fails, those already
// started are stopped again and the failure is returned.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Starting components", logger.Fields("count", len(r.slots)))
	for _, s := range r.slots {
		name := s.c.Name()
		if err := s.c.Start(ctx); err != nil {
			r.log.Error("Component start failed", logger.MergeWithError(logger.Fields(logger.FieldComponent, name), err))
			_ = r.stopRunning(ctx)
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		s.up = true
		r.log.Debug("Component started", logger.Fields(logger.FieldComponent, name))
	}
	return nil
}

// StopAll stops every started component, newest first, and joins the
// failures.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Stopping components")
	return r.stopRunning(ctx)
}

func (r *Registry) stopRunning(ctx context.Context) error {
	var errs []error
	for i := len(r.slots) - 1; i >= 0; i-- {
		s := r.slots[i]
		if !s.up {
			continue
		}
		name := s.c.Name()
		if err := stopWithin(ctx, s.c); err != nil {
			r.log.Error("Component stop failed", logger.MergeWithError(logger.Fields(logger.FieldComponent, name), err))
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
		} else {
			r.log.Debug("Component stopped", logger.Fields(logger.FieldComponent, name))
		}
		s.up = false
	}
	return errors.Join(errs...)
}

func stopWithin(ctx context.Context, c Component) error {
	ctx, cancel := context.WithTimeout(ctx, stopBudget)
	defer cancel()
	return c.Stop(ctx)
}

// HealthAll probes every component in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.c.Health(ctx)
	}
	return out
}

// Describe collects descriptions from Describable components.
func (r *Registry) Describe() []Description {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Description
	for _, s := range r.slots {
		d, ok := s.c.(Describable)
		if !ok {
			continue
		}
		desc := d.Describe()
		if desc.Name == "" {
			desc.Name = s.c.Name()
		}
		out = append(out, desc)
	}
	return out
}

// Get returns the component registered as name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.byName[name]; ok {
		return s.c
	}
	return nil
}

// All lists components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Component, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.c
	}
	return out
}
