package interfaces

import "context"

// KVStore is the minimal cross-package contract for persisted key-value data.
// Values are opaque strings; callers are expected to JSON-encode structured
// data before storing it. Implementations should be safe for concurrent use.
type KVStore interface {
	// Get returns the value stored under key. The second return value is
	// false when the key is absent; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value. The write
	// must be atomic: readers never observe a partially written value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}
