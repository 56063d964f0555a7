// Package config handles loading and saving user configuration for sancai.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Log        LogConfig        `yaml:"log"`
	Store      StoreConfig      `yaml:"store"`
	Cache      CacheConfig      `yaml:"cache"`
	Batch      BatchConfig      `yaml:"batch"`
	TUI        TUIConfig        `yaml:"tui"`
}

// DictionaryConfig locates the stroke dictionary resource.
type DictionaryConfig struct {
	Location    string        `yaml:"location"`     // file path or http(s) URL; empty means search defaults
	LoadTimeout time.Duration `yaml:"load_timeout"` // e.g. "30s"
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`          // debug, info, warn, error
	File  string `yaml:"file,omitempty"` // empty logs to stderr
}

// StoreConfig configures the SQLite report history.
type StoreConfig struct {
	Path string `yaml:"path"` // empty means <config dir>/history.db
}

// CacheConfig configures the optional Redis result cache.
type CacheConfig struct {
	Addr     string        `yaml:"addr"` // empty disables the cache
	Password string        `yaml:"password,omitempty"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// BatchConfig configures batch analysis.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// TUIConfig configures the interactive UI.
type TUIConfig struct {
	FontPath string `yaml:"font_path,omitempty"` // CJK font for the name banner
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Dictionary: DictionaryConfig{LoadTimeout: 30 * time.Second},
		Log:        LogConfig{Level: "warn"},
		Cache:      CacheConfig{TTL: 24 * time.Hour},
		Batch:      BatchConfig{Workers: 8},
	}
}

// Load reads the config file at path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Dictionary.LoadTimeout < 0 {
		return fmt.Errorf("dictionary.load_timeout must not be negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sancai"), nil
}

// EnsureConfigDir creates dir if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
