package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.Classifier.Provider != "offline" {
		t.Fatalf("provider = %q", cfg.Classifier.Provider)
	}
	if cfg.ScanTimeout() != 30*time.Second {
		t.Fatalf("scan timeout = %s", cfg.ScanTimeout())
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
listen_addr: ":9090"
scan_timeout_seconds: 5
store:
  backend: memory
classifier:
  provider: remote
  base_url: http://localhost:8000
auth:
  jwt_secret: sekrit
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.ScanTimeout() != 5*time.Second {
		t.Fatalf("scan timeout = %s", cfg.ScanTimeout())
	}
	if cfg.Store.Backend != "memory" {
		t.Fatalf("store backend = %q", cfg.Store.Backend)
	}
	if cfg.Classifier.Provider != "remote" || cfg.Classifier.BaseURL != "http://localhost:8000" {
		t.Fatalf("classifier = %+v", cfg.Classifier)
	}
	if cfg.Auth.JWTSecret != "sekrit" {
		t.Fatalf("jwt secret not loaded")
	}
	// Untouched fields keep their defaults.
	if cfg.WebClient.Backend != "nethttp" {
		t.Fatalf("webclient backend = %q", cfg.WebClient.Backend)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
