package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/logging"
)

// Backend names accepted by Config.Backend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config selects and parameterizes a KVStore backend.
type Config struct {
	// Backend is one of sqlite, redis, memory. Empty means sqlite.
	Backend string `yaml:"backend"`

	// Path is the directory holding the sqlite database file.
	Path string `yaml:"path"`

	// RedisAddr is the host:port of the redis server.
	RedisAddr string `yaml:"redis_addr"`
}

// Open constructs the configured backend.
func Open(ctx context.Context, cfg Config, logger logging.Logger) (interfaces.KVStore, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendSQLite
	}

	switch backend {
	case BackendSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a storage path")
		}
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("ensure storage path %s: %w", cfg.Path, err)
		}
		db, err := sql.Open("sqlite", filepath.Join(cfg.Path, "veriscan.db"))
		if err != nil {
			return nil, fmt.Errorf("opening kv database: %w", err)
		}
		return NewSQLiteStore(db, logger)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisAddr, logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown kv backend %q", cfg.Backend)
	}
}
