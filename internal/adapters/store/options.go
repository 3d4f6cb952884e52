// Package store implements the client for the hosted results store.
package store

import (
	"net/http"
	"time"

	"github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithView sets the results view queried by FetchResults.
func WithView(view string) Option {
	return func(c *Client) {
		if view != "" {
			c.view = view
		}
	}
}

// WithRowCap sets the default row cap applied when a query does not carry
// its own limit.
func WithRowCap(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.rowCap = n
		}
	}
}

// WithTimeout sets the HTTP client timeout for store calls.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
