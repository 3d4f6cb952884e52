// Package repository caches computed ranking snapshots. Rankings are always
// recomputed from freshly fetched rows; the cache only memoizes the result of
// a pass keyed by its filter selection so unrelated UI state changes do not
// trigger recomputation.
package repository

import (
	"context"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
)

// Store provides read/write access to cached ranking snapshots.
type Store interface {
	// Get returns the snapshot cached under key, if present and fresh.
	Get(ctx context.Context, key string) ([]model.TeamRanking, bool)

	// Put caches a snapshot under key, replacing any existing entry.
	Put(ctx context.Context, key string, ranked []model.TeamRanking)

	// Invalidate drops all cached snapshots.
	Invalidate(ctx context.Context)

	// Len returns the number of cached snapshots.
	Len(ctx context.Context) int
}
