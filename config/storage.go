package config

import (
	"strings"
	"time"
)

// StorageDriver selects the persisted browser storage backend.
type StorageDriver string

const (
	StorageDriverMemory StorageDriver = "memory"
	StorageDriverRedis  StorageDriver = "redis"
	StorageDriverFile   StorageDriver = "file"
)

const (
	defaultStorageTTL    = 720 * time.Hour
	defaultStoragePrefix = "admin:browser:"
	defaultStorageDir    = ".data/browsers"
)

// StorageConfig controls where each browser's persisted keys live.
type StorageConfig struct {
	Driver StorageDriver `env:"STORAGE_DRIVER" envDefault:"memory"`

	// TTL is the upper bound on how long a browser's keys survive.
	// Tokens that carry an exp claim shorten it.
	TTL time.Duration `env:"STORAGE_TTL" envDefault:"720h"`

	// Prefix namespaces Redis keys.
	Prefix string `env:"STORAGE_PREFIX" envDefault:"admin:browser:"`

	// Dir is the root directory for the file driver.
	Dir string `env:"STORAGE_DIR" envDefault:".data/browsers"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	switch StorageDriver(strings.ToLower(strings.TrimSpace(string(s.Driver)))) {
	case StorageDriverRedis:
		s.Driver = StorageDriverRedis
	case StorageDriverFile:
		s.Driver = StorageDriverFile
	default:
		s.Driver = StorageDriverMemory
	}
	if s.TTL <= 0 {
		s.TTL = defaultStorageTTL
	}
	if strings.TrimSpace(s.Prefix) == "" {
		s.Prefix = defaultStoragePrefix
	}
	if strings.TrimSpace(s.Dir) == "" {
		s.Dir = defaultStorageDir
	}
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPort       string   `env:"SENTINEL_PORT"        envDefault:"26379"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
