package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/fixtures"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumTeams      = 200
	defaultEventsPerTeam = 6
	defaultMessyRatio    = 0.2
	defaultTimeout       = 2 * time.Minute
)

func main() {
	var (
		numTeams      = flag.Int("teams", defaultNumTeams, "Number of teams to generate")
		eventsPerTeam = flag.Int("events", defaultEventsPerTeam, "Competitions attended per team")
		workers       = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		season        = flag.String("season", "2025", "Season start year")
		messyRatio    = flag.Float64("messy", defaultMessyRatio, "Portion of rows with loosely typed fields")
		outputFile    = flag.String("output", "season_rows.json", "Output file for generated rows")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	config := &fixtures.Config{
		NumTeams:      *numTeams,
		EventsPerTeam: *eventsPerTeam,
		Workers:       *workers,
		Season:        *season,
		MessyRatio:    *messyRatio,
		OutputFile:    *outputFile,
	}

	var stats fixtures.Stats
	rows, err := fixtures.Generate(ctx, config, &stats)
	if err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		return
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		os.Stderr.WriteString("failed to create output file: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = out.Close()
	}()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		os.Stderr.WriteString("failed to write rows: " + err.Error() + "\n")
		return
	}

	logger.Get().Info(ctx, "wrote seed rows",
		logger.String("file", config.OutputFile),
		logger.Int("rows", stats.RowsGenerated))
}
