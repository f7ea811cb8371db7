// Package config loads application configuration from a TOML file.
//
// The default location is ~/.config/lineage/config.toml. A missing file is
// not an error: every section has working defaults, so the file only needs
// to list the settings that differ.
//
// Example:
//
//	[layout]
//	node_width = 200.0
//	spouse_spacing = 240.0
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[store]
//	backend = "file"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/treekit/lineage/pkg/layout"
)

// Backend names accepted by the cache and store sections.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Cache  CacheConfig   `toml:"cache"`
	Store  StoreConfig   `toml:"store"`
	Server ServerConfig  `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's cache directory.
	Dir string `toml:"dir,omitempty"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db,omitempty"`
}

// StoreConfig selects and configures the snapshot store backend.
type StoreConfig struct {
	// Backend is one of "file" or "mongo".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's snapshot directory.
	Dir string `toml:"dir,omitempty"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig configures the MongoDB store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database,omitempty"`
	Collection string `toml:"collection,omitempty"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Store: StoreConfig{
			Backend: BackendFile,
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017"},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "lineage", "config.toml"), nil
}

// Load reads the configuration from path, overlaying the defaults.
// An empty path means the default location. A missing file yields the
// defaults without error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks backend names and the layout section.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case BackendFile, BackendMongo:
	default:
		return fmt.Errorf("invalid store backend: %q (must be one of: file, mongo)", c.Store.Backend)
	}

	if err := c.Layout.Validate(); err != nil {
		return err
	}
	return nil
}

// Save writes the configuration as TOML to path, creating parent
// directories as needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
