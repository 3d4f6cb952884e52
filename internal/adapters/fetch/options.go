// Package fetch coordinates upstream fetches with superseding semantics.
package fetch

import "github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"

// Option applies a configuration option to the Coordinator.
type Option func(*Coordinator)

// WithLogger sets a custom logger for the coordinator.
func WithLogger(l logger.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}
