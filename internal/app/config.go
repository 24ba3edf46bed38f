package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/calder-r/veriscan/internal/auth"
	"github.com/calder-r/veriscan/internal/classifier"
	"github.com/calder-r/veriscan/internal/kvstore"
	"github.com/calder-r/veriscan/internal/webclient"
)

// Config contains the runtime configuration for the whole service. Fields
// map onto an optional YAML file; anything absent keeps its default.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string `yaml:"listen_addr"`

	// StorageRoot is the base path for local state (sqlite database).
	StorageRoot string `yaml:"storage_root"`

	// ScanTimeoutSeconds bounds one classification call. Zero means 30.
	ScanTimeoutSeconds int `yaml:"scan_timeout_seconds"`

	Store      kvstore.Config    `yaml:"store"`
	Classifier classifier.Config `yaml:"classifier"`
	WebClient  webclient.Config  `yaml:"webclient"`
	Auth       auth.Config       `yaml:"auth"`
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:         ":8080",
		StorageRoot:        "~/.config/veriscan",
		ScanTimeoutSeconds: 30,
		Store: kvstore.Config{
			Backend: kvstore.BackendSQLite,
		},
		Classifier: classifier.Config{
			Provider: classifier.ProviderOffline,
			BaseURL:  "http://localhost:8000",
		},
		WebClient: webclient.Config{
			Backend:        "nethttp",
			TimeoutSeconds: 30,
			Headless:       true,
		},
		Auth: auth.Config{
			TokenTTLHours: 24,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error;
// the defaults simply apply.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ScanTimeout is ScanTimeoutSeconds as a duration.
func (c *Config) ScanTimeout() time.Duration {
	if c.ScanTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.ScanTimeoutSeconds) * time.Second
}

// ExpandStorageRoot resolves a leading ~ in StorageRoot against the user's
// home directory.
func (c *Config) ExpandStorageRoot() (string, error) {
	p := c.StorageRoot
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
