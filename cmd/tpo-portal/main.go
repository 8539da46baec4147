package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/tpo-portal/tpo-ui-api/internal/bootstrap"
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

	logger.InfoContext(ctx, "starting tpo-portal",
		"dev", cfg.IsDev,
		"state_backend", string(cfg.State.Backend),
		"gateway", cfg.Gateway.BaseURL,
	)

	services, err := bootstrap.BuildServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	return bootstrap.Run(ctx, cfg, services, logger)
}
