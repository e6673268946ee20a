package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/target/storefront-admin/config"
	"github.com/target/storefront-admin/internal/bootstrap"
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

	logger, logCloser := bootstrap.ConfigureLogger(cfg.Logging)
	defer func() {
		if cerr := logCloser.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close log file failed", "error", cerr)
		}
	}()

	logStartupInfo(ctx, logger, &cfg)

	storage, err := bootstrap.BuildStorage(ctx, bootstrap.StorageConfig{
		Storage: cfg.Storage,
		Redis:   cfg.Redis,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	auth, err := bootstrap.BuildAuthService(bootstrap.AuthConfig{
		Backend: cfg.Backend,
		Storage: cfg.Storage,
		Store:   storage,
		Logger:  logger,
	})
	if err != nil {
		if cerr := storage.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close storage failed", "error", cerr)
		}
		return err
	}

	return bootstrap.RunWithShutdown(ctx, bootstrap.RunConfig{
		Config:  &cfg,
		Auth:    auth,
		Closers: []io.Closer{storage},
		Logger:  logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting storefront admin",
		"addr", cfg.HTTP.Addr,
		"backend_url", cfg.Backend.URL,
		"storage_driver", string(cfg.Storage.Driver),
		"dev_mode", cfg.IsDev)
}
