package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/target/storefront-admin/config"
	httpx "github.com/target/storefront-admin/internal/http"
)

const (
	// shutdownWaitTimeout is the maximum time to wait for the server to drain.
	shutdownWaitTimeout = 15 * time.Second
)

// RunConfig contains everything needed to serve the console.
type RunConfig struct {
	Config *config.AppConfig
	Auth   httpx.BrowserOpener
	// Closers are released after the server stopped, in order.
	Closers []io.Closer
	Logger  *slog.Logger

	// signals replaces the OS signal channel in tests.
	signals <-chan os.Signal
}

// RunWithShutdown starts the HTTP server and blocks until a shutdown signal,
// a server error or ctx cancellation. The server is then drained and the
// closers are released.
func RunWithShutdown(ctx context.Context, cfg RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config: cfg.Config,
		Auth:   cfg.Auth,
		Logger: logger,
	}, errCh)

	quit := cfg.signals
	if quit == nil {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		quit = sigCh
	}

	return waitForShutdown(shutdownConfig{
		ctx:        ctx,
		quit:       quit,
		errCh:      errCh,
		httpServer: server,
		closers:    cfg.Closers,
		logger:     logger,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx        context.Context
	quit       <-chan os.Signal
	errCh      <-chan error
	httpServer *http.Server
	closers    []io.Closer
	logger     *slog.Logger
}

// waitForShutdown waits for shutdown signal or server error.
func waitForShutdown(cfg shutdownConfig) error {
	select {
	case sig := <-cfg.quit:
		cfg.logger.Info("shutting down", "signal", sig.String())
		return gracefulStop(cfg)
	case <-cfg.ctx.Done():
		cfg.logger.Info("shutting down", "reason", cfg.ctx.Err())
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("server error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop drains the HTTP server, then releases the closers even when
// the drain timed out.
func gracefulStop(cfg shutdownConfig) error {
	err := ShutdownHTTPServer(ShutdownConfig{
		Context: context.WithoutCancel(cfg.ctx),
		Server:  cfg.httpServer,
		Logger:  cfg.logger,
	})
	for _, c := range cfg.closers {
		if c == nil {
			continue
		}
		if cerr := c.Close(); cerr != nil {
			cfg.logger.Warn("close failed", "error", cerr)
		}
	}
	return err
}
