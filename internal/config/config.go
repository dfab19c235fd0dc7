// Package config loads the mxtool configuration file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk TOML configuration.
type Config struct {
	Homeserver  string `toml:"homeserver"`
	UserID      string `toml:"user_id"`
	AccessToken string `toml:"access_token"`
	Workers     int    `toml:"workers"`
	LogLevel    string `toml:"log_level"`
}

// DefaultDir returns the per-user directory holding the config file and the
// backup-key cache.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mxtool"), nil
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no config at %s; create it with homeserver, user_id and access_token set", path)
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Homeserver == "" {
		return fmt.Errorf("homeserver is required")
	}
	u, err := url.Parse(c.Homeserver)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("homeserver %q is not an absolute URL", c.Homeserver)
	}
	if c.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if c.AccessToken == "" {
		return fmt.Errorf("access_token is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	return nil
}
