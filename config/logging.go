package config

import (
	"log/slog"
	"strings"
)

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// File, when set, receives a copy of every log line with size-based rotation.
	File       string `env:"LOG_FILE"          envDefault:""`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB"   envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS"   envDefault:"5"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS"  envDefault:"28"`
}

// Sanitize applies guardrails to logging configuration values.
func (l *LoggingConfig) Sanitize() {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	l.File = strings.TrimSpace(l.File)
	if l.MaxSizeMB <= 0 {
		l.MaxSizeMB = 100
	}
	if l.MaxBackups < 0 {
		l.MaxBackups = 0
	}
	if l.MaxAgeDays < 0 {
		l.MaxAgeDays = 0
	}
}

// SlogLevel maps Level onto a slog level, defaulting to info.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
