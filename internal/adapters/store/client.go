// Package store implements the client for the hosted results store. The
// store exposes pre-built relational views and one stored procedure over a
// PostgREST-style HTTP surface; this client pushes cheap predicates down to
// the views and caps the number of rows returned. All aggregation happens
// elsewhere, on whatever rows the store hands back.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultView    = "season_results"
	defaultRowCap  = 5000
	maxRowCap      = 50000
	defaultTimeout = 15 * time.Second
)

// Query is the predicate set pushed down to the results view. Only cheap
// predicates belong here; categorical filters (flex/D2/size) are applied in
// memory by the aggregator.
type Query struct {
	Before      string // inclusive upper bound on weekend_date (ISO)
	After       string // inclusive lower bound on weekend_date (ISO)
	LevelPrefix string // matches division labels starting with the level token
	Search      string // OR-matched substring across team/program/division/event
	Limit       int    // row cap; 0 means the client default
}

// Client fetches result rows from the hosted store.
type Client struct {
	baseURL    string
	apiKey     string
	view       string
	rowCap     int
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a store client for the given base URL and API key.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		view:       defaultView,
		rowCap:     defaultRowCap,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("store")
	}

	return c
}

// FetchResults retrieves rows from the results view matching q. The response
// is a JSON array of loosely-typed objects; no per-row validation happens
// here beyond JSON well-formedness.
func (c *Client) FetchResults(ctx context.Context, q Query) ([]model.ResultRecord, error) {
	start := time.Now()

	u := c.baseURL + "/rest/v1/" + c.view + "?" + c.encodeQuery(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordFetchError()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordFetchError()
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	var rows []model.ResultRecord
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		metrics.RecordFetchError()
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	metrics.RecordFetch(float64(time.Since(start).Milliseconds()))
	metrics.RecordRowsFetched(len(rows))
	c.logger.Debug(ctx, "fetched result rows",
		logger.Int("rows", len(rows)),
		logger.String("view", c.view),
	)
	return rows, nil
}

// SeasonWeekends calls the season_weekends stored procedure, which returns
// the distinct competition weekends of the current season, newest first.
func (c *Client) SeasonWeekends(ctx context.Context) ([]string, error) {
	u := c.baseURL + "/rest/v1/rpc/season_weekends"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader("{}"))
	if err != nil {
		return nil, fmt.Errorf("build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordFetchError()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordFetchError()
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	var weekends []string
	if err := json.NewDecoder(resp.Body).Decode(&weekends); err != nil {
		metrics.RecordFetchError()
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return weekends, nil
}

// encodeQuery translates q into PostgREST filter parameters.
func (c *Client) encodeQuery(q Query) string {
	v := url.Values{}
	v.Set("select", "*")
	v.Set("order", "weekend_date.desc")

	limit := q.Limit
	if limit <= 0 {
		limit = c.rowCap
	}
	if limit > maxRowCap {
		limit = maxRowCap
	}
	v.Set("limit", strconv.Itoa(limit))

	if q.Before != "" {
		v.Add("weekend_date", "lte."+q.Before)
	}
	if q.After != "" {
		v.Add("weekend_date", "gte."+q.After)
	}
	if q.LevelPrefix != "" {
		v.Set("division", "ilike."+q.LevelPrefix+"*")
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		pattern := "*" + s + "*"
		v.Set("or", fmt.Sprintf(
			"(team_name.ilike.%s,program_name.ilike.%s,division.ilike.%s,event_name.ilike.%s)",
			pattern, pattern, pattern, pattern,
		))
	}
	return v.Encode()
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())
}
