// Package handlers implements the CLI command logic: composing the Azure
// client, cache, resolver and validation engine from configuration.
package handlers

import (
	"fmt"
	"log/slog"

	"github.com/imamik/azcap/internal/azure"
	"github.com/imamik/azcap/internal/cache"
	"github.com/imamik/azcap/internal/catalog"
	"github.com/imamik/azcap/internal/config"
	"github.com/imamik/azcap/internal/metrics"
	"github.com/imamik/azcap/internal/validate"
)

// App bundles the wired components behind the CLI commands.
type App struct {
	Config  *config.Config
	Catalog *catalog.Resolver
	Engine  *validate.Engine
	Logger  *slog.Logger
}

// newApp loads configuration and wires the component graph.
func newApp(configPath string, logger *slog.Logger) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return newAppWithConfig(cfg, logger)
}

func newAppWithConfig(cfg *config.Config, logger *slog.Logger) (*App, error) {
	clientOpts := []azure.Option{azure.WithLogger(logger)}
	if cfg.ARMEndpoint != "" {
		clientOpts = append(clientOpts, azure.WithEndpoint(cfg.ARMEndpoint))
	}
	client, err := azure.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build Azure client: %w", err)
	}

	store := cache.New(
		cache.WithDefaultTTL(cfg.TTL()),
		cache.WithObserver(metrics.ObserveCache),
	)
	api := azure.Instrument(client, metrics.RecordUpstreamCall)
	resolver := catalog.NewResolver(api, store,
		catalog.WithLogger(logger),
		catalog.WithDefaultSubscription(cfg.SubscriptionID),
	)
	engine := validate.NewEngine(resolver, validate.WithLogger(logger))

	return &App{
		Config:  cfg,
		Catalog: resolver,
		Engine:  engine,
		Logger:  logger,
	}, nil
}
