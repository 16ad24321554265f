package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fatih/color"

	"github.com/at-ishikawa/guanwo/internal/bootstrap"
	"github.com/at-ishikawa/guanwo/internal/config"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// withServices loads the config, wires the services and closes them after fn.
func withServices(ctx context.Context, fn func(cfg *config.Config, services *bootstrap.Services) error) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	services, err := bootstrap.NewServices(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := services.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(cfg, services)
}
