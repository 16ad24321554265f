// Package bootstrap runs a process until it is interrupted and then stops
// its components in reverse start order.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type hook struct {
	name string
	fn   func(ctx context.Context) error
}

// App collects the shutdown hooks of the components a process starts.
type App struct {
	mu              sync.Mutex
	hooks           []hook
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

func New(shutdownTimeout time.Duration, logger *slog.Logger) *App {
	return &App{shutdownTimeout: shutdownTimeout, logger: logger}
}

// OnShutdown registers fn to stop the component called name. Hooks run
// last-registered first, so a component stops before what it depends on.
func (a *App) OnShutdown(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, hook{name: name, fn: fn})
}

// Run calls run with a context cancelled on SIGINT or SIGTERM. Hooks run
// once either the signal arrives or run returns. After a signal, Run waits
// for run to return until the shutdown timeout elapses.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down", slog.Any("cause", context.Cause(ctx)))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		hookErr := a.shutdown(shutdownCtx)
		select {
		case runErr = <-errCh:
		case <-shutdownCtx.Done():
			runErr = fmt.Errorf("run did not return within %s", a.shutdownTimeout)
		}
		return errors.Join(ignoreCanceled(runErr), hookErr)
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	return errors.Join(ignoreCanceled(runErr), a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.fn(ctx); err != nil {
			a.logger.Error("shutdown hook failed", slog.String("hook", h.name), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
			continue
		}
		a.logger.Debug("stopped", slog.String("hook", h.name))
	}
	return errors.Join(errs...)
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
