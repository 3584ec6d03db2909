// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package config loads the service's configuration through a layered
koanf pipeline: struct defaults, then an optional YAML file, then
environment variables (highest priority). See koanf.go for the loader.
*/
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration object.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Server   ServerConfig   `koanf:"server"`
	Sync     SyncConfig     `koanf:"sync"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB connection settings for the cell store.
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"` // 0 = use runtime.NumCPU()
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
}

// UpstreamConfig holds the OpenCellID feed location and credentials.
type UpstreamConfig struct {
	BaseURL      string        `koanf:"base_url"`
	APIKey       string        `koanf:"api_key"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	MaxRetries   int           `koanf:"max_retries"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SyncConfig holds scheduler tuning parameters.
type SyncConfig struct {
	TickInterval time.Duration `koanf:"tick_interval"`
	BatchSize    int           `koanf:"batch_size"`
	HourFence    int           `koanf:"hour_fence"` // UTC hour before which ticks are skipped
}

// LoggingConfig holds zerolog setup parameters.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
}

// Validate checks invariants that cannot be expressed as defaults alone.
func (c *Config) Validate() error {
	if c.Upstream.APIKey == "" {
		return fmt.Errorf("config: upstream.api_key (OPENCELLID_API_KEY) is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("config: database.path (DATABASE_URL) is required")
	}
	if c.Sync.BatchSize <= 0 {
		return fmt.Errorf("config: sync.batch_size must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port out of range: %d", c.Server.Port)
	}
	return nil
}
