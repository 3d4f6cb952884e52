// Package repository caches computed ranking snapshots.
package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithTTL sets how long a cached snapshot stays fresh.
func WithTTL(ttl time.Duration) Option {
	return func(s *MemStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxEntries bounds the number of cached snapshots.
func WithMaxEntries(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}
