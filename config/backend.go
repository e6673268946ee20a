package config

import (
	"strings"
	"time"
)

const (
	defaultAPIURL     = "/api"
	defaultAPIOrigin  = "http://localhost:8000"
	defaultAPITimeout = 15 * time.Second
)

// BackendConfig describes how the console reaches the e-commerce REST API.
type BackendConfig struct {
	// URL is the API base. A relative value such as "/api" is resolved
	// against Origin, the same way a browser resolves it against the page.
	URL string `env:"API_URL" envDefault:"/api"`

	// Origin is the scheme and host used when URL is relative.
	Origin string `env:"API_ORIGIN" envDefault:"http://localhost:8000"`

	// Timeout bounds a single backend request.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// RetryAttempts applies to idempotent requests that fail at the transport level.
	RetryAttempts uint          `env:"API_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"API_RETRY_DELAY"    envDefault:"200ms"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.URL = strings.TrimSpace(b.URL)
	if b.URL == "" {
		b.URL = defaultAPIURL
	}
	b.Origin = strings.TrimRight(strings.TrimSpace(b.Origin), "/")
	if b.Origin == "" {
		b.Origin = defaultAPIOrigin
	}
	if b.Timeout <= 0 {
		b.Timeout = defaultAPITimeout
	}
	if b.RetryAttempts == 0 {
		b.RetryAttempts = 1
	}
	if b.RetryDelay < 0 {
		b.RetryDelay = 0
	}
}
