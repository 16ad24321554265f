package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/guanwo/internal/bootstrap"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/scheduler"
	"github.com/at-ishikawa/guanwo/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("guanwo-server", pflag.ContinueOnError)
	configFile := flags.String("config", os.Getenv("GUANWO_CONFIG"), "config file path")
	debug := flags.Bool("debug", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		return err
	}

	logger := newLogger(*debug)
	loader, err := config.NewConfigLoader(*configFile)
	if err != nil {
		return fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("loader.Load() > %w", err)
	}

	services, err := bootstrap.NewServices(cfg, logger)
	if err != nil {
		return err
	}
	app := bootstrap.New(shutdownTimeout, logger)
	app.OnShutdown("services", services.Close)

	return app.Run(context.Background(), func(ctx context.Context) error {
		if err := services.Start(ctx); err != nil {
			return err
		}

		if cfg.Scheduler.Enabled {
			gate, err := newGate(ctx, cfg.Redis, logger)
			if err != nil {
				return err
			}
			if closer, ok := gate.(interface{ Close() error }); ok {
				app.OnShutdown("scheduler gate", func(context.Context) error { return closer.Close() })
			}
			sched := scheduler.NewScheduler(scheduler.Deps{
				Owners:    services.EntryRepo,
				Configs:   services.ConfigRepo,
				Generator: services.Generator,
				Gate:      gate,
			}, cfg, logger)
			go func() {
				if err := sched.Run(ctx); err != nil {
					logger.Error("scheduler stopped", slog.Any("error", err))
				}
			}()
		}

		handler, err := newHandler(cfg, services, logger)
		if err != nil {
			return err
		}
		srv := &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Server.Port)),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		app.OnShutdown("http", srv.Shutdown)

		logger.Info("starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe() > %w", err)
		}
		return nil
	})
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newGate(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (scheduler.Gate, error) {
	if cfg.Addr == "" {
		logger.Info("scheduler gate is in process")
		return scheduler.NewMemoryGate(), nil
	}
	gate, err := scheduler.NewRedisGate(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("scheduler.NewRedisGate() > %w", err)
	}
	return gate, nil
}

func newHandler(cfg *config.Config, services *bootstrap.Services, logger *slog.Logger) (http.Handler, error) {
	location := cfg.App.Location()
	entries, err := server.NewEntryHandler(services.Entries, services.Tags, location, logger)
	if err != nil {
		return nil, fmt.Errorf("server.NewEntryHandler() > %w", err)
	}
	insights, err := server.NewInsightHandler(services.Insights, services.Generator, logger)
	if err != nil {
		return nil, fmt.Errorf("server.NewInsightHandler() > %w", err)
	}
	tags, err := server.NewTagHandler(services.Tags, services.Trends, location, logger)
	if err != nil {
		return nil, fmt.Errorf("server.NewTagHandler() > %w", err)
	}
	return server.NewHandler(cfg.Server, entries, insights, tags), nil
}
