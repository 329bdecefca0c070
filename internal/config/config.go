// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	App       AppConfig
	Numbering NumberingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `default:"8080"`
	ReadTimeout     time.Duration `split_words:"true" default:"15s"`
	WriteTimeout    time.Duration `split_words:"true" default:"15s"`
	IdleTimeout     time.Duration `split_words:"true" default:"60s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
}

// DatabaseConfig selects the driver and connection. DSN wins over the discrete fields.
type DatabaseConfig struct {
	Driver   string `default:"postgres"`
	DSN      string
	Host     string `default:"localhost"`
	Port     int    `default:"5432"`
	User     string `default:"azuldeco"`
	Password string `default:"azuldeco"`
	Name     string `default:"azuldeco"`
	SSLMode  string `default:"disable"`
	Debug    bool
	Retries  int `default:"10"`
}

// RedisConfig is optional; an empty Addr disables the settings cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int           `default:"0"`
	TTL      time.Duration `default:"5m"`
}

type LogConfig struct {
	Level  string `default:"info"`
	Format string `default:"json"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Env        string `default:"development"`
	Migrations bool
	Seed       bool
}

type NumberingConfig struct {
	MaxAttempts int `split_words:"true" default:"5"`
}

func (a AppConfig) Dev() bool { return a.Env != "production" }

// ConnString returns the DSN for the configured driver.
func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == "sqlite" {
		return d.Name + ".db"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var cfg Config
	for prefix, target := range map[string]any{
		"SERVER":    &cfg.Server,
		"DB":        &cfg.Database,
		"REDIS":     &cfg.Redis,
		"LOG":       &cfg.Log,
		"APP":       &cfg.App,
		"NUMBERING": &cfg.Numbering,
	} {
		if err := envconfig.Process(prefix, target); err != nil {
			return nil, errors.Wrapf(err, "load %s config", prefix)
		}
	}
	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Numbering.MaxAttempts < 1 {
		cfg.Numbering.MaxAttempts = 1
	}
	return &cfg, nil
}
