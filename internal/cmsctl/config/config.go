// Package config loads the operator CLI settings: built-in defaults, then
// an optional YAML file under the XDG config dir, then the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/dmitrijs2005/labelshop/internal/flagx"
	"gopkg.in/yaml.v3"
)

const appDir = "labelshop"

type Config struct {
	ServerURL string `yaml:"server_url"`
	// Email is offered as the default login.
	Email     string `yaml:"email"`
	Timeout   string `yaml:"timeout"`
	StatePath string `yaml:"state_path"`
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDir, "cmsctl.yaml")
}

// DefaultStatePath is where tokens are kept between runs.
func DefaultStatePath() string {
	return filepath.Join(xdg.DataHome, appDir, "cmsctl.db")
}

func defaults() *Config {
	return &Config{
		ServerURL: "http://localhost:9000",
		Timeout:   "30s",
		StatePath: DefaultStatePath(),
	}
}

// RequestTimeout parses Timeout, falling back to 30s.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Load reads path (DefaultConfigPath when empty). A missing file is not an
// error; malformed YAML is.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	flagx.EnvString(&cfg.ServerURL, "CMSCTL_SERVER_URL", "CMS_URL")
	flagx.EnvString(&cfg.Email, "CMSCTL_EMAIL")
	flagx.EnvString(&cfg.Timeout, "CMSCTL_TIMEOUT")
	flagx.EnvString(&cfg.StatePath, "CMSCTL_STATE_PATH")

	if cfg.StatePath == "" {
		cfg.StatePath = DefaultStatePath()
	}
	return cfg, nil
}
