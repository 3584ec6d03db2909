// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where a config file is searched for,
// in priority order. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cell-service/config.yaml",
	"/etc/cell-service/config.yml",
}

// ConfigPathEnvVar overrides the config file search with an explicit path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config populated with sensible defaults. These
// apply first; the config file and environment layer on top.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:                   "/data/cell-service.duckdb",
			MaxMemory:              "2GB",
			Threads:                0,
			PreserveInsertionOrder: true,
		},
		Upstream: UpstreamConfig{
			BaseURL:        "https://opencellid.org/ocid/downloads",
			APIKey:         "",
			RequestTimeout: 5 * time.Minute,
			MaxRetries:     3,
		},
		Server: ServerConfig{
			Port:    3000,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Sync: SyncConfig{
			TickInterval: 10 * time.Minute,
			BatchSize:    1000,
			HourFence:    4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the Config through three layers, in increasing priority:
// struct defaults, an optional YAML file, and environment variables.
//
//	DATABASE_URL          -> database.path
//	OPENCELLID_API_KEY    -> upstream.api_key
//	RUST_LOG-equivalent   -> logging.level via LOG_LEVEL
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped rather than guessed at, so unrelated
// process environment does not leak into the config tree.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"database_url":         "database.path",
		"database_max_memory":  "database.max_memory",
		"database_threads":     "database.threads",

		"opencellid_api_key": "upstream.api_key",
		"upstream_base_url":  "upstream.base_url",
		"upstream_timeout":   "upstream.request_timeout",
		"upstream_retries":   "upstream.max_retries",

		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",

		"sync_tick_interval": "sync.tick_interval",
		"sync_batch_size":    "sync.batch_size",
		"sync_hour_fence":    "sync.hour_fence",

		"rust_log":   "logging.level",
		"log_level":  "logging.level",
		"log_format": "logging.format",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
