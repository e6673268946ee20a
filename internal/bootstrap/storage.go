package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/storefront-admin/config"
	"github.com/target/storefront-admin/internal/adapters/filestore"
	"github.com/target/storefront-admin/internal/adapters/memstore"
	redisadapter "github.com/target/storefront-admin/internal/adapters/redis"
	"github.com/target/storefront-admin/internal/ports"
)

// StorageConfig contains configuration for the persisted browser storage.
type StorageConfig struct {
	Storage config.StorageConfig
	Redis   config.RedisConfig
	Logger  *slog.Logger

	// connect replaces ConnectRedis in tests.
	connect func(context.Context, RedisConnConfig) (redis.UniversalClient, error)
}

// Storage is the selected storage backend. Redis is set only for the redis
// driver and must be closed on shutdown.
type Storage struct {
	ports.Storage
	Redis redis.UniversalClient
}

// Close releases the Redis client, if any.
func (s Storage) Close() error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Close()
}

// BuildStorage selects the storage driver. Redis is connected only when the
// redis driver is configured.
func BuildStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		connect := cfg.connect
		if connect == nil {
			connect = ConnectRedis
		}
		client, err := connect(ctx, RedisConnConfig{Redis: cfg.Redis, Logger: logger})
		if err != nil {
			return Storage{}, fmt.Errorf("connect redis: %w", err)
		}
		logger.InfoContext(ctx, "browser storage ready", "driver", "redis", "prefix", cfg.Storage.Prefix)
		return Storage{
			Storage: redisadapter.NewStorageWithPrefix(client, cfg.Storage.Prefix),
			Redis:   client,
		}, nil

	case config.StorageDriverFile:
		logger.InfoContext(ctx, "browser storage ready", "driver", "file", "dir", cfg.Storage.Dir)
		return Storage{Storage: filestore.NewOS(cfg.Storage.Dir)}, nil

	default:
		logger.WarnContext(ctx, "browser storage is in memory; sign-ins are lost on restart", "driver", "memory")
		return Storage{Storage: memstore.New()}, nil
	}
}
