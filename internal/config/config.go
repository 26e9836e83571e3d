package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the flat laneboard configuration.
type Config struct {
	Version    string `json:"version"`
	DBPath     string `json:"db_path,omitempty"`     // defaults to ~/.laneboard/laneboard.db
	ListenAddr string `json:"listen_addr,omitempty"` // defaults to :8080
	RedisAddr  string `json:"redis_addr,omitempty"`  // empty disables the board cache
	CacheTTL   string `json:"cache_ttl,omitempty"`   // duration string, defaults to 1m
	LegacyGaps bool   `json:"legacy_gaps,omitempty"` // preserve historic non-compacting moves
	Debug      bool   `json:"debug,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version:    "1",
		ListenAddr: ":8080",
		CacheTTL:   "1m",
	}
}

// LoadConfig reads .laneboard/config.json from the specified directory,
// falling back to defaults when the file is absent.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".laneboard", "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes config.json to the directory.
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".laneboard")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .laneboard dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// CacheTTLDuration parses the configured cache TTL, falling back to one
// minute on absent or malformed values.
func (c *Config) CacheTTLDuration() time.Duration {
	if c.CacheTTL == "" {
		return time.Minute
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}
