// Package fetch coordinates upstream fetches so that a new filter selection
// always supersedes an in-flight one. A slow response from a stale filter
// state must never overwrite results computed for a newer selection, so each
// refresh carries a monotonically increasing token and responses whose token
// no longer matches the current one are discarded.
package fetch

import (
	"context"
	"sync"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/adapters/store"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/metrics"
)

// Fetcher retrieves raw result rows for one pushed-down query.
type Fetcher interface {
	FetchResults(ctx context.Context, q store.Query) ([]model.ResultRecord, error)
}

// Coordinator serializes refreshes against the results store. It does not
// queue stale work behind new work: starting a refresh cancels whatever
// fetch is still in flight.
type Coordinator struct {
	fetcher Fetcher
	logger  logger.Logger

	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
}

// NewCoordinator creates a coordinator over the given fetcher.
func NewCoordinator(fetcher Fetcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		fetcher: fetcher,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("fetch")
	}

	return c
}

// Refresh fetches rows for q. Any fetch still in flight from an earlier
// Refresh is cancelled first. If a newer Refresh starts while this one is
// waiting on the store, the response is discarded and ErrSuperseded is
// returned; the caller must not surface partial or stale data in that case.
func (c *Coordinator) Refresh(ctx context.Context, q store.Query) ([]model.ResultRecord, error) {
	c.mu.Lock()
	c.token++
	token := c.token
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	rows, err := c.fetcher.FetchResults(fetchCtx, q)

	c.mu.Lock()
	superseded := token != c.token
	if !superseded {
		c.cancel = nil
	}
	c.mu.Unlock()
	cancel()

	if superseded {
		metrics.RecordStaleDiscarded()
		c.logger.Debug(ctx, "discarding superseded fetch response",
			logger.Int("token", int(token)),
		)
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Token returns the token of the most recent refresh, for stats reporting.
func (c *Coordinator) Token() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}
