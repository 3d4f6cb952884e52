// Package model contains domain models passed between layers.
package model

// ResultRecord is one raw row from the hosted results store. The upstream
// schema is not enforced, so rows arrive as loosely-typed maps keyed by
// column name. Field access goes through the resolve package; nothing else
// should read these maps directly.
type ResultRecord map[string]any

// Fields is the typed view of one ResultRecord produced by the field
// resolver. String fields are empty when no candidate column held a usable
// value; HasScore distinguishes a real zero score from an absent one.
type Fields struct {
	TeamKey     string // stable team identity, derived when no explicit id exists
	ProgramName string
	TeamName    string
	Division    string // raw free-text division label
	Level       string // "L1".."L7"
	AgeBracket  string
	Flex        bool
	D2          bool
	Size        string // X-Small, Small, Medium, Large, X-Large or empty
	EventKey    string // explicit competition identifier
	SourceURL   string
	EventName   string
	WeekendDate string // ISO date of the competition weekend
	Score       float64
	HasScore    bool
}

// SizeObservation pairs a weekend date with the size category reported on
// that weekend. Size is empty when the row carried no usable size.
type SizeObservation struct {
	WeekendDate string
	Size        string
}

// TeamRanking is one output row of the ranking aggregator: a team's season
// standing within a single track.
type TeamRanking struct {
	Rank        int     `json:"rank"`
	TeamKey     string  `json:"team_key"`
	ProgramName string  `json:"program_name"`
	TeamName    string  `json:"team_name"`
	Track       string  `json:"track"`
	Bucket      string  `json:"bucket"`
	Size        string  `json:"size,omitempty"`
	Events      int     `json:"events"`
	AvgScore    float64 `json:"avg_score"`
}

// ChartPoint is a label/value pair consumed by chart renderers.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
