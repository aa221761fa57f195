package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/doconnect/doconnect-web/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting doconnect-web",
		"api_base_url", cfg.API.BaseURL,
		"addr", cfg.HTTP.Addr,
		"dev", cfg.IsDev)

	redisClient, err := bootstrap.ConnectRedis(cfg.Session, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	apiClient, err := bootstrap.NewAPIClient(cfg.API)
	if err != nil {
		return err
	}

	metrics, err := bootstrap.NewMetricsClient(cfg.Metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close statsd failed", "error", cerr)
		}
	}()

	services := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:   &cfg,
		API:      apiClient,
		Sessions: bootstrap.NewSessionStore(redisClient, cfg.Session),
		Metrics:  metrics,
		Logger:   logger,
	})

	server, err := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Metrics:  metrics,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.WaitForShutdown(ctx, server, logger)
}
