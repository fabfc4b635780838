// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the server.
type Config struct {
	Port       string
	DBPath     string
	LogLevel   string
	JWTSecret  string
	InviteSalt string

	// TokenDuration is how long session tokens stay valid.
	TokenDuration time.Duration

	// ReminderSpec is the cron expression for the deadline sweep.
	ReminderSpec string

	// ReminderWindow is how far ahead of a phase deadline reminders fire.
	ReminderWindow time.Duration
}

// Load reads configuration from a .env file (if present) and the
// environment. JWT_SECRET and INVITE_SALT have no sane defaults and
// are required.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment")
	}

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		DBPath:        getEnvOrDefault("DB_PATH", "data/weddingplan.db"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		TokenDuration: 7 * 24 * time.Hour,
		ReminderSpec:  getEnvOrDefault("REMINDER_SPEC", "0 9 * * *"),
	}

	if cfg.JWTSecret = os.Getenv("JWT_SECRET"); cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if cfg.InviteSalt = os.Getenv("INVITE_SALT"); cfg.InviteSalt == "" {
		return nil, fmt.Errorf("INVITE_SALT environment variable is required")
	}

	window, err := time.ParseDuration(getEnvOrDefault("REMINDER_WINDOW", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_WINDOW: %w", err)
	}
	cfg.ReminderWindow = window

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
