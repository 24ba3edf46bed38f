package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/model"
)

// Capacity is the maximum number of results the log retains. Inserting
// beyond it evicts the oldest entry.
const Capacity = 10

// storageKey is where the JSON-encoded log lives in the KV store. History is
// keyed process-wide rather than per user identity; see the note on NewStore.
const storageKey = "scan_history"

// Store is an append-bounded log of past scan results, most-recent-first,
// persisted through the KV contract after every mutation. Single writer,
// single reader within one running instance; the mutex only guards against
// accidental concurrent API calls.
type Store struct {
	kv     interfaces.KVStore
	logger logging.Logger

	mu      sync.Mutex
	entries []*model.ScanResult
}

// NewStore loads the persisted log. Absent or corrupt data yields an empty
// log rather than an error.
//
// Known scoping gap carried over from the product as shipped: the log is one
// per store, not one per authenticated user. Partitioning by identity is a
// product decision that has not been made yet.
func NewStore(ctx context.Context, kv interfaces.KVStore, logger logging.Logger) *Store {
	s := &Store{kv: kv, logger: logger}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	raw, ok, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		s.logger.Warn("loading scan history", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	if !ok {
		return
	}

	var entries []*model.ScanResult
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		// Corrupt data must not crash the caller; start over empty.
		s.logger.Warn("discarding corrupt scan history", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	s.entries = entries
}

// Record prepends result, truncates to Capacity and persists the full
// resulting log in one write. On a persistence failure the in-memory log is
// left unchanged so memory and storage never disagree.
func (s *Store) Record(ctx context.Context, result *model.ScanResult) error {
	if result == nil {
		return fmt.Errorf("nil scan result")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*model.ScanResult, 0, len(s.entries)+1)
	next = append(next, result)
	next = append(next, s.entries...)
	if len(next) > Capacity {
		next = next[:Capacity]
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding scan history: %w", err)
	}
	if err := s.kv.Set(ctx, storageKey, string(encoded)); err != nil {
		return fmt.Errorf("persisting scan history: %w", err)
	}

	s.entries = next
	return nil
}

// List returns the log most-recent-first. The returned slice is a copy;
// mutating it does not affect the store.
func (s *Store) List() []*model.ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.ScanResult, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len reports the current number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
