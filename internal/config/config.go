// Package config loads and saves growthcast preferences.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/growthcast/internal/forecast"

	"github.com/BurntSushi/toml"
)

// Config holds all growthcast configuration.
type Config struct {
	Defaults   forecast.Input   `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	LogLevel string `toml:"log_level"`
}

// DefaultAddr is the HTTP listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8790"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: forecast.DefaultInput(),
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:     DefaultAddr,
			LogLevel: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "growthcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "growthcast")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Keys missing from the file keep their default values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ServerAddr returns the listen address from env var or config, in that order.
func ServerAddr(cfg Config) string {
	if addr := os.Getenv("GROWTHCAST_ADDR"); addr != "" {
		return addr
	}
	if cfg.Server.Addr != "" {
		return cfg.Server.Addr
	}
	return DefaultAddr
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
