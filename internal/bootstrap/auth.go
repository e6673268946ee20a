package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/storefront-admin/config"
	"github.com/target/storefront-admin/internal/adapters/backend"
	"github.com/target/storefront-admin/internal/ports"
	"github.com/target/storefront-admin/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Backend config.BackendConfig
	Storage config.StorageConfig
	Store   ports.Storage
	Logger  *slog.Logger
}

// BuildAuthService creates the backend client and the AuthService that opens
// each browser's session on top of it.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	if cfg.Store == nil {
		return nil, errors.New("browser storage is required")
	}

	client, err := backend.NewClient(backend.ClientConfig{
		BaseURL:       cfg.Backend.URL,
		Origin:        cfg.Backend.Origin,
		Timeout:       cfg.Backend.Timeout,
		RetryAttempts: cfg.Backend.RetryAttempts,
		RetryDelay:    cfg.Backend.RetryDelay,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}

	svc, err := service.NewAuthService(service.AuthServiceOptions{
		Gateway: client,
		Storage: cfg.Store,
		Config: service.AuthServiceConfig{
			MaxTTL: cfg.Storage.TTL,
			Logger: cfg.Logger,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create auth service: %w", err)
	}
	return svc, nil
}
