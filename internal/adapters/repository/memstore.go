// Package repository caches computed ranking snapshots.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/metrics"
)

// Default cache configuration constants.
const (
	defaultTTL        = 60 * time.Second
	defaultMaxEntries = 128
)

// entry is one cached snapshot with its expiry.
type entry struct {
	ranked   []model.TeamRanking
	storedAt time.Time
}

// MemStore implements Store with a mutex-guarded map, per-entry TTL, and
// oldest-first eviction once the entry cap is reached.
type MemStore struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemStore creates an in-memory snapshot cache with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		entries:    make(map[string]entry),
		ttl:        defaultTTL,
		maxEntries: defaultMaxEntries,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the snapshot cached under key when present and not expired.
// Callers receive the cached slice itself; snapshots are treated as
// immutable once stored.
func (s *MemStore) Get(ctx context.Context, key string) ([]model.TeamRanking, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if s.now().Sub(e.storedAt) > s.ttl {
		s.mu.Lock()
		delete(s.entries, key)
		metrics.UpdateSnapshotEntries(len(s.entries))
		s.mu.Unlock()
		return nil, false
	}
	return e.ranked, true
}

// Put caches a snapshot under key, evicting the oldest entry if the cache
// is full.
func (s *MemStore) Put(ctx context.Context, key string, ranked []model.TeamRanking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.evictOldest()
	}
	s.entries[key] = entry{ranked: ranked, storedAt: s.now()}
	metrics.UpdateSnapshotEntries(len(s.entries))
}

// Invalidate drops all cached snapshots.
func (s *MemStore) Invalidate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	metrics.UpdateSnapshotEntries(0)
}

// Len returns the number of cached snapshots.
func (s *MemStore) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// evictOldest removes the entry with the earliest storedAt.
// Must be called with s.mu held.
func (s *MemStore) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, e := range s.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.storedAt
			first = false
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}
