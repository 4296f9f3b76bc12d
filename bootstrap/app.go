package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/utilkit/component"
	"github.com/kbukum/utilkit/logger"
)

const defaultGracefulTimeout = 15 * time.Second

// Hook runs at a lifecycle edge. OnStart hooks run after the components
// are up; OnStop hooks run before they go down.
type Hook func(ctx context.Context) error

// App owns the components of one command or service and the typed
// config C they were built from.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
}

// Option adjusts NewApp.
type Option func(*settings)

type settings struct {
	log      *logger.Logger
	graceful time.Duration
}

// WithLogger replaces the global logger NewApp would otherwise build
// from the config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithGracefulTimeout bounds OnStop hooks plus component shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) { s.graceful = d }
}

// NewApp fills defaults in cfg and rejects it when invalid.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()

	s := settings{graceful: defaultGracefulTimeout}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		logger.Init(base.Logging)
		s.log = logger.GetGlobalLogger()
	}

	return &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(s.log),
		Logger:          s.log,
		gracefulTimeout: s.graceful,
	}, nil
}

func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

func (a *App[C]) OnStart(hooks ...Hook) { a.onStart = append(a.onStart, hooks...) }

func (a *App[C]) OnStop(hooks ...Hook) { a.onStop = append(a.onStop, hooks...) }

// ReadyCheck fails with the name=status(message) of each component that
// is not healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var bad []string
	for _, h := range a.Components.HealthAll(ctx) {
		if !h.OK() {
			bad = append(bad, h.String())
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("unhealthy components: %v", bad)
	}
	return nil
}
