// Package ranking turns deduplicated competition scores into a rank-ordered
// season standing per (team identity x track).
package ranking

import (
	"fmt"
	"strings"
)

// Filters is the immutable configuration of one ranking query. Level, Query,
// and Before are pushed down to the results store as cheap predicates; the
// aggregator re-applies every categorical filter over the fetched population
// before the minimum-events threshold, so store pushdown stays an
// optimization and never a correctness dependency.
type Filters struct {
	Level     string // level prefix, e.g. "L3"
	Age       string // age bracket, e.g. "Junior"
	FlexOnly  bool
	D2Only    bool
	Size      string // concrete size label; never matches an unresolved size
	MinEvents int    // 0 means the aggregator default
	Query     string // free-text OR-match across team/program/division/event
	Before    string // inclusive upper bound on weekend date (ISO)
	Limit     int    // display cap; 0 means the aggregator default
}

// CacheKey returns a stable string identifying this filter selection, used
// to memoize computed rankings.
func (f Filters) CacheKey() string {
	return fmt.Sprintf("%s|%s|%t|%t|%s|%d|%s|%s|%d",
		strings.ToLower(f.Level),
		strings.ToLower(f.Age),
		f.FlexOnly,
		f.D2Only,
		f.Size,
		f.MinEvents,
		strings.ToLower(strings.TrimSpace(f.Query)),
		f.Before,
		f.Limit,
	)
}
