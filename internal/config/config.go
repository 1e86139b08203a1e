package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env       string    `mapstructure:"env"`        // local, dev, production
	Addr      string    `mapstructure:"addr"`       // listen address
	Commit    string    `mapstructure:"commit"`     // reported by /version
	BuildTime string    `mapstructure:"build_time"` // reported by /version
	Questions Questions `mapstructure:"questions"`
	Store     Store     `mapstructure:"store"`
	HTTP      HTTP      `mapstructure:"http"`
}

// Questions configures where the question bank comes from.
type Questions struct {
	Path string `mapstructure:"path"` // YAML/JSON bank; empty uses the built-in set
}

// Store selects the score store backend.
type Store struct {
	Backend       string `mapstructure:"backend"`        // memory or sqlite
	SQLiteDSN     string `mapstructure:"sqlite_dsn"`     // must be an in-memory database
	MigrationsDir string `mapstructure:"migrations_dir"` // overrides embedded migrations
}

// HTTP holds server limits.
type HTTP struct {
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration from ./config/config.yaml (optional) and
// QUIZ_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("addr", ":3001")
	v.SetDefault("commit", "")
	v.SetDefault("build_time", "")
	v.SetDefault("questions.path", "")
	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.sqlite_dsn", "file:quiz?mode=memory&cache=shared&_busy_timeout=5000")
	v.SetDefault("store.migrations_dir", "")
	v.SetDefault("http.max_body_bytes", 1<<20)
	v.SetDefault("http.shutdown_timeout", "5s")

	// QUIZ_STORE_BACKEND -> store.backend
	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidConfig)
	}
	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if !IsInMemoryDSN(c.Store.SQLiteDSN) {
			return fmt.Errorf("%w: store.sqlite_dsn must be an in-memory database, got %q", ErrInvalidConfig, c.Store.SQLiteDSN)
		}
	default:
		return fmt.Errorf("%w: unknown store.backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: http.max_body_bytes must be positive", ErrInvalidConfig)
	}
	if c.HTTP.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: http.shutdown_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// IsInMemoryDSN reports whether a go-sqlite3 DSN names a database that
// lives only as long as the process.
func IsInMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
