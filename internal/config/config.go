package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration, read from the environment.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Session  SessionConfig
	Log      LogConfig
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address        string `env:"HTTP_ADDRESS" env-default:":8080"`
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"` // comma-separated
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `env:"DB_PATH" env-default:"app.db"` // SQLite database file path
}

// SessionConfig contains session cookie settings.
type SessionConfig struct {
	Secret string `env:"SESSION_SECRET"` // signing secret for session cookies
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"console"` // "json" or "console"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is not set; required for production")
	}
	return &cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for SESSION_SECRET in
// development. WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = "dev-session-secret-change-me"
	}
	return &cfg, nil
}
