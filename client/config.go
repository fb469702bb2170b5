package client

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the terminal client's YAML configuration.
type Config struct {
	ServerURL   string `yaml:"serverURL"`
	SessionFile string `yaml:"sessionFile"`
}

// DefaultConfigPath is resolved under the user's config directory.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "deskcli.yaml"
	}
	return filepath.Join(dir, "projectdesk", "deskcli.yaml")
}

// LoadConfig reads the YAML config, filling defaults for anything missing. A
// missing file yields the pure defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8080"
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = filepath.Join(filepath.Dir(path), "session.json")
	}
	return cfg, nil
}
