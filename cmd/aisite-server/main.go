// Package main provides the HTTP server for the AI solutions site.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/aisite-go/internal/client"
	"github.com/raphaelgruber/aisite-go/internal/config"
	"github.com/raphaelgruber/aisite-go/internal/metrics"
	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/scenario"
	"github.com/raphaelgruber/aisite-go/internal/server"
	"github.com/raphaelgruber/aisite-go/internal/timeline"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logging
	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		_ = closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	defaultGroup, err := models.ParseGroupKey(cfg.DefaultGroup)
	if err != nil {
		return err
	}

	cat, err := scenario.Open(cfg.ScenarioFile)
	if err != nil {
		return err
	}
	cache, err := timeline.NewCache(cat, 0)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Deps{
		Groups:       cat,
		Timelines:    cache,
		Leads:        client.New(cfg.APIURL, cfg.LeadTimeout, logger),
		Metrics:      metrics.NewCollector(),
		Chat:         cfg.ChatConfig(logger),
		DefaultGroup: defaultGroup,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	slog.Info("starting aisite-server", "port", cfg.ServerPort, "lead_api", cfg.APIURL)

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, ":"+cfg.ServerPort)
}
