package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/utilkit/logger"
)

// RunTask starts the components, runs task and shuts everything down.
// SIGINT and SIGTERM cancel the context task receives. A task error is
// returned in preference to a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	taskErr := task(taskCtx)
	if taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("Task interrupted by signal")
	}
	stop()

	if err := a.stop(); err != nil && taskErr == nil {
		return err
	}
	return taskErr
}

// Shutdown runs OnStop hooks and stops the components, for callers
// driving the lifecycle without RunTask.
func (a *App[C]) Shutdown(_ context.Context) error {
	return a.stop()
}

func (a *App[C]) startup(ctx context.Context) error {
	began := time.Now()
	a.Logger.Debug("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		_ = a.Components.StopAll(context.Background())
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.MergeWithError(nil, err))
	}

	for _, d := range a.Components.Describe() {
		a.Logger.Debug("Component ready", logger.Fields("name", d.Name, "type", d.Type, "details", d.Details))
	}
	a.Logger.Debug("Application started", logger.DurationFields("startup", time.Since(began)))
	return nil
}

// stop keeps going after a failed hook so components are always
// released. The last failure is returned.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var last error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook failed", logger.MergeWithError(nil, err))
		last = err
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Components stopped with errors", logger.MergeWithError(nil, err))
		last = err
	}
	a.Logger.Debug("Application shutdown complete")
	return last
}

func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
