// Package config loads qrsheet settings.
//
// Settings are resolved in order, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, by default $XDG_CONFIG_HOME/qrsheet/config.toml
//  3. QRSHEET_* environment variables
//  4. command-line flags (applied by the CLI)
//
// Example file:
//
//	[defaults]
//	size = 75
//	error_level = "m"
//	output = "both"
//
//	[sessions]
//	backend = "redis"
//	max_age = "2h"
//	redis_addr = "localhost:6379"
//
//	[cache]
//	disabled = true
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

const (
	appName = "qrsheet"

	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "QRSHEET_"
)

// Config is the full configuration.
type Config struct {
	Defaults Defaults `toml:"defaults" envPrefix:"DEFAULT_"`
	Sessions Sessions `toml:"sessions" envPrefix:"SESSIONS_"`
	Cache    Cache    `toml:"cache" envPrefix:"CACHE_"`
}

// Defaults are the generation options used when a flag is not given.
type Defaults struct {
	Size         int     `toml:"size" env:"SIZE"`
	PageMargin   float64 `toml:"page_margin" env:"PAGE_MARGIN"`
	SymbolMargin float64 `toml:"symbol_margin" env:"SYMBOL_MARGIN"`
	ErrorLevel   string  `toml:"error_level" env:"ERROR_LEVEL"`
	Output       string  `toml:"output" env:"OUTPUT"`
	Page         string  `toml:"page" env:"PAGE"`
	Text         bool    `toml:"text" env:"TEXT"`
	PageNumbers  bool    `toml:"page_numbers" env:"PAGE_NUMBERS"`
	Workers      int     `toml:"workers" env:"WORKERS"`
}

// Sessions configures the session workspace and its registry.
type Sessions struct {
	Root          string        `toml:"root" env:"ROOT"`
	MaxAge        time.Duration `toml:"max_age" env:"MAX_AGE"`
	SweepInterval time.Duration `toml:"sweep_interval" env:"SWEEP_INTERVAL"`
	Backend       string        `toml:"backend" env:"BACKEND"`

	RedisAddr     string `toml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"REDIS_DB"`
	RedisKey      string `toml:"redis_key" env:"REDIS_KEY"`

	MongoURI        string `toml:"mongo_uri" env:"MONGO_URI"`
	MongoDatabase   string `toml:"mongo_database" env:"MONGO_DATABASE"`
	MongoCollection string `toml:"mongo_collection" env:"MONGO_COLLECTION"`
}

// Cache configures the symbol cache.
type Cache struct {
	Dir      string        `toml:"dir" env:"DIR"`
	Disabled bool          `toml:"disabled" env:"DISABLED"`
	TTL      time.Duration `toml:"ttl" env:"TTL"`
}

// Default returns the built-in configuration. Directory defaults follow the
// XDG base directory layout; they are left empty when no home directory can
// be determined.
func Default() *Config {
	return &Config{
		Defaults: Defaults{
			Size:       50,
			PageMargin: 5,
			ErrorLevel: "l",
			Output:     "pdf",
			Page:       "a4",
		},
		Sessions: Sessions{
			Root:          dataDir("sessions"),
			MaxAge:        time.Hour,
			SweepInterval: 15 * time.Minute,
			Backend:       "file",
		},
		Cache: Cache{
			Dir: cacheDir(),
			TTL: 7 * 24 * time.Hour,
		},
	}
}

// Load resolves the configuration. An empty path reads the default file if
// it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse environment")
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, mustExist bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !mustExist {
			return nil
		}
		return errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/qrsheet/config.toml, or "" when no
// config directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// cacheDir returns the cache directory using XDG standard (~/.cache/qrsheet/).
func cacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}

// dataDir returns a directory under $XDG_DATA_HOME/qrsheet (~/.local/share).
func dataDir(name string) string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName, name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName, name)
	}
	return filepath.Join(home, ".local", "share", appName, name)
}
