package client

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the terminal client's configuration, read from a TOML file next
// to the state store.
type Config struct {
	ServerURL     string   `toml:"server_url"`
	ProbeInterval duration `toml:"probe_interval"`
}

// duration lets TOML carry values like "10s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// DefaultConfig points at a local server with a 10-second health probe.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:     "http://localhost:3000",
		ProbeInterval: duration{10 * time.Second},
	}
}

// DefaultConfigPath is the config location under the user config directory.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tanya", "config.toml"), nil
}

// LoadConfig reads the TOML config at path, falling back to defaults for a
// missing file or any unset field.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultConfig().ServerURL
	}
	if cfg.ProbeInterval.Duration <= 0 {
		cfg.ProbeInterval = DefaultConfig().ProbeInterval
	}
	return cfg, nil
}
