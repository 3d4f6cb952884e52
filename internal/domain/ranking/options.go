// Package ranking turns deduplicated competition scores into a rank-ordered
// season standing per (team identity x track).
package ranking

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithMinEvents sets the default minimum number of distinct competitions a
// team must have before it appears in a ranking. Callers can still lower the
// threshold per query to include single-competition teams.
func WithMinEvents(n int) Option {
	return func(a *Aggregator) {
		if n >= 1 {
			a.minEvents = n
		}
	}
}

// WithLimit caps the number of ranked rows returned. The cap is applied after
// filtering and sorting so the whole population is ranked first.
func WithLimit(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.limit = n
		}
	}
}

// WithPrecision sets the decimal precision of displayed average scores.
func WithPrecision(digits int) Option {
	return func(a *Aggregator) {
		if digits >= 0 {
			a.precision = digits
		}
	}
}
