package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Backend.URL != "/api" {
		t.Fatalf("expected default API URL /api, got %q", cfg.Backend.URL)
	}
	if cfg.Backend.Origin != "http://localhost:8000" {
		t.Fatalf("unexpected default origin %q", cfg.Backend.Origin)
	}
	if cfg.Storage.Driver != StorageDriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.Storage.Driver)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTP.Addr)
	}
}

func TestAppConfig_ParseBackendEnv(t *testing.T) {
	t.Setenv("API_URL", "https://shop.example.com/api")
	t.Setenv("API_ORIGIN", "https://ignored.example.com/")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("API_RETRY_ATTEMPTS", "4")
	t.Setenv("API_RETRY_DELAY", "50ms")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expected := BackendConfig{
		URL:           "https://shop.example.com/api",
		Origin:        "https://ignored.example.com",
		Timeout:       5 * time.Second,
		RetryAttempts: 4,
		RetryDelay:    50 * time.Millisecond,
	}
	if !reflect.DeepEqual(cfg.Backend, expected) {
		t.Fatalf("unexpected backend configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Backend)
	}
}

func TestBackendConfig_Sanitize(t *testing.T) {
	cfg := BackendConfig{URL: "  ", Origin: "", Timeout: -1, RetryAttempts: 0, RetryDelay: -time.Second}
	cfg.Sanitize()

	if cfg.URL != defaultAPIURL {
		t.Fatalf("expected URL to fall back to %q, got %q", defaultAPIURL, cfg.URL)
	}
	if cfg.Origin != defaultAPIOrigin {
		t.Fatalf("expected origin fallback, got %q", cfg.Origin)
	}
	if cfg.Timeout != defaultAPITimeout {
		t.Fatalf("expected timeout fallback, got %v", cfg.Timeout)
	}
	if cfg.RetryAttempts != 1 {
		t.Fatalf("expected at least one attempt, got %d", cfg.RetryAttempts)
	}
	if cfg.RetryDelay != 0 {
		t.Fatalf("expected negative delay to clamp to zero, got %v", cfg.RetryDelay)
	}
}

func TestStorageConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name   string
		driver StorageDriver
		want   StorageDriver
	}{
		{name: "redis", driver: "redis", want: StorageDriverRedis},
		{name: "file upper case", driver: " FILE ", want: StorageDriverFile},
		{name: "unknown falls back", driver: "dynamo", want: StorageDriverMemory},
		{name: "empty falls back", driver: "", want: StorageDriverMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := StorageConfig{Driver: tt.driver}
			cfg.Sanitize()
			if cfg.Driver != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, cfg.Driver)
			}
			if cfg.TTL != defaultStorageTTL || cfg.Prefix != defaultStoragePrefix || cfg.Dir != defaultStorageDir {
				t.Fatalf("expected defaults to be applied, got %#v", cfg)
			}
		})
	}
}

func TestLoggingConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := LoggingConfig{Level: in}
		cfg.Sanitize()
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 0}
	cfg.Sanitize()
	if cfg.CompressionLevel != 1 {
		t.Fatalf("expected clamp to 1, got %d", cfg.CompressionLevel)
	}
	cfg.CompressionLevel = 42
	cfg.Sanitize()
	if cfg.CompressionLevel != 9 {
		t.Fatalf("expected clamp to 9, got %d", cfg.CompressionLevel)
	}
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	var cfg AppConfig
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Fatalf("expected dev mode from NODE_ENV")
	}
}
