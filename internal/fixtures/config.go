package fixtures

// Config controls synthetic season generation.
type Config struct {
	NumTeams      int     // Number of distinct teams
	EventsPerTeam int     // Competitions attended per team
	Workers       int     // Number of concurrent generator workers
	Season        string  // Season start year, e.g. "2025"
	MessyRatio    float64 // Portion of rows emitted with loosely typed fields
	OutputFile    string  // Output file for generated rows
}

// Stats holds generation statistics.
type Stats struct {
	TeamsGenerated int
	RowsGenerated  int
	MessyRows      int
}
