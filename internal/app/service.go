// Package service provides the core business service that implements
// the dependencies required by the HTTP API: fetch result rows, resolve
// fields, and aggregate them into ranked output.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/adapters/fetch"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/adapters/repository"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/adapters/store"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/ranking"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/resolve"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultRowCap      = 5000
	defaultChartLimit  = 10
	defaultMaxLimit    = 50
	defaultMinEvents   = 2
	defaultPrecision   = 2
	defaultSnapshotTTL = 60 * time.Second
	defaultSnapshotCap = 128
)

// ResultSource is the external collaborator rankings are computed from.
type ResultSource interface {
	FetchResults(ctx context.Context, q store.Query) ([]model.ResultRecord, error)
	SeasonWeekends(ctx context.Context) ([]string, error)
}

// Service implements the API dependencies for the ranking system. Each
// ranking query is an independent read-and-recompute pass: fetch rows, filter
// and aggregate in memory, return the ranked output. Nothing is persisted.
type Service struct {
	mu sync.RWMutex

	// Core components
	source      ResultSource
	snapshots   repository.Store
	coordinator *fetch.Coordinator
	aggregator  *ranking.Aggregator

	// Configuration
	rowCap      int
	chartLimit  int
	maxLimit    int
	minEvents   int
	precision   int
	snapshotTTL time.Duration
	snapshotCap int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the results store the service fetches from.
func WithSource(source ResultSource) Option {
	return func(s *Service) {
		if source != nil {
			s.source = source
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRowCap sets the row cap pushed down to the results store.
func WithRowCap(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.rowCap = n
		}
	}
}

// WithChartLimit sets how many teams the chart series carries.
func WithChartLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.chartLimit = n
		}
	}
}

// WithMaxLimit caps the number of ranked rows returned to callers.
func WithMaxLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithMinEvents sets the default minimum-competitions threshold.
func WithMinEvents(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.minEvents = n
		}
	}
}

// WithPrecision sets the decimal precision of displayed averages.
func WithPrecision(digits int) Option {
	return func(s *Service) {
		if digits >= 0 {
			s.precision = digits
		}
	}
}

// WithSnapshotTTL sets how long computed rankings stay memoized.
func WithSnapshotTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.snapshotTTL = ttl
		}
	}
}

// WithSnapshotCap bounds the snapshot cache size.
func WithSnapshotCap(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.snapshotCap = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rowCap:      defaultRowCap,
		chartLimit:  defaultChartLimit,
		maxLimit:    defaultMaxLimit,
		minEvents:   defaultMinEvents,
		precision:   defaultPrecision,
		snapshotTTL: defaultSnapshotTTL,
		snapshotCap: defaultSnapshotCap,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.source == nil {
		return ErrNoSource
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.snapshots = repository.NewMemStore(
		repository.WithTTL(s.snapshotTTL),
		repository.WithMaxEntries(s.snapshotCap),
	)
	s.coordinator = fetch.NewCoordinator(s.source)
	s.aggregator = ranking.New(
		ranking.WithMinEvents(s.minEvents),
		ranking.WithLimit(s.maxLimit),
		ranking.WithPrecision(s.precision),
	)

	s.started = true
	s.logger.Info(ctx, "ranking service started",
		logger.Int("rowCap", s.rowCap),
		logger.Int("minEvents", s.minEvents),
		logger.Int("maxLimit", s.maxLimit),
	)

	return nil
}

// Stop shuts down the service and drops memoized snapshots.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.snapshots.Invalidate(context.Background())
	s.started = false
	s.logger.Info(context.Background(), "ranking service stopped")
}

// Rankings computes the ranked list for one filter selection. A memoized
// snapshot is returned when the same selection was computed recently;
// otherwise rows are fetched fresh and aggregated. On fetch failure the
// result is empty, never a stale snapshot from another selection.
func (s *Service) Rankings(ctx context.Context, f ranking.Filters) ([]model.TeamRanking, error) {
	key := f.CacheKey()
	if ranked, ok := s.snapshots.Get(ctx, key); ok {
		metrics.RecordSnapshotHit()
		return ranked, nil
	}
	metrics.RecordSnapshotMiss()

	rows, err := s.coordinator.Refresh(ctx, store.Query{
		Before:      f.Before,
		LevelPrefix: f.Level,
		Search:      f.Query,
		Limit:       s.rowCap,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch results: %w", err)
	}

	start := time.Now()
	ranked := s.aggregator.Aggregate(resolve.Records(rows), f)
	metrics.RecordRankingComputed(float64(time.Since(start).Milliseconds()))
	metrics.UpdateTeamsRanked(len(ranked))

	s.snapshots.Put(ctx, key, ranked)
	s.logger.Debug(ctx, "computed ranking",
		logger.Int("rows", len(rows)),
		logger.Int("teams", len(ranked)),
	)
	return ranked, nil
}

// ChartSeries derives the top-N label/value series for chart rendering from
// the full ranked list of the given selection.
func (s *Service) ChartSeries(ctx context.Context, f ranking.Filters) ([]model.ChartPoint, error) {
	// The full population must be ranked before truncation, so the chart
	// query never passes a display limit down to the aggregator.
	f.Limit = 0
	ranked, err := s.Rankings(ctx, f)
	if err != nil {
		return nil, err
	}
	return ranking.ChartSeries(ranked, s.chartLimit), nil
}

// Weekends lists the distinct competition weekends of the season.
func (s *Service) Weekends(ctx context.Context) ([]string, error) {
	weekends, err := s.source.SeasonWeekends(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch season weekends: %w", err)
	}
	return weekends, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"rowCap":    s.rowCap,
		"minEvents": s.minEvents,
		"maxLimit":  s.maxLimit,
	}

	if s.started {
		stats["snapshots"] = s.snapshots.Len(context.Background())
		stats["fetchToken"] = s.coordinator.Token()
	}

	return stats
}
