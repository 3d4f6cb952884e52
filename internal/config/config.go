// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBaseURL points at the hosted results store.
	StoreBaseURL string `koanf:"store_base_url"`

	// StoreAPIKey authenticates against the results store.
	StoreAPIKey string `koanf:"store_api_key"`

	// StoreView names the pre-built results view queried for rankings.
	StoreView string `koanf:"store_view"`

	// RowCap bounds the number of rows fetched per ranking query.
	RowCap int `koanf:"row_cap"`

	// FetchTimeoutMS bounds one results store round trip.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// MinEvents is the default minimum-competitions threshold.
	MinEvents int `koanf:"min_events"`

	// MaxLimit caps GET /rankings?limit.
	MaxLimit int `koanf:"max_limit"`

	// ChartLimit sets how many teams the chart series carries.
	ChartLimit int `koanf:"chart_limit"`

	// ScorePrecision is the decimal precision of displayed averages.
	ScorePrecision int `koanf:"score_precision"`

	// SnapshotTTLMS controls how long computed rankings stay memoized.
	SnapshotTTLMS int `koanf:"snapshot_ttl_ms"`

	// SnapshotCap bounds the snapshot cache size.
	SnapshotCap int `koanf:"snapshot_cap"`
}

// New creates a Config populated with defaults. Load layers file and env
// configuration on top of these.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		StoreView:      "season_results",
		RowCap:         5000,
		FetchTimeoutMS: 15_000,
		MinEvents:      2,
		MaxLimit:       50,
		ChartLimit:     10,
		ScorePrecision: 2,
		SnapshotTTLMS:  60_000,
		SnapshotCap:    128,
	}
}
