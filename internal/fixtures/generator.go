// Package fixtures generates synthetic season result rows shaped like the
// hosted store's loosely-typed views. The rows are used to seed development
// stores and to exercise field resolution end to end.
package fixtures

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	scoreProfileCount  = 6
	messyVariantCount  = 4
)

// Constants for score generation ranges.
const (
	averageTeamMin   = 82.0
	averageTeamRange = 8.0
	strongTeamMin    = 90.0
	strongTeamRange  = 5.0
	weakTeamMin      = 70.0
	weakTeamRange    = 12.0
	eliteTeamMin     = 95.0
	eliteTeamRange   = 4.5
	midTeamMin       = 78.0
	midTeamRange     = 8.0
	wideTeamMin      = 65.0
	wideTeamRange    = 34.0
)

// Constants for score profile cases.
const (
	caseAverageTeam = 0
	caseStrongTeam  = 1
	caseWeakTeam    = 2
	caseEliteTeam   = 3
	caseMidTeam     = 4
	caseWideRange   = 5
)

// divisionLabels are realistic free-text division strings, including messy
// ones that only the label parser can classify.
var divisionLabels = []string{
	"L1 Tiny",
	"L2 Mini",
	"L3 Youth Small",
	"L4 Senior - Medium",
	"L5 Senior Large",
	"L6 Senior X-Small",
	"l4.2 senior flex",
	"L5 Junior D2 Small",
	"L3 U16 Medium",
	"L6 Open Large",
}

var programNames = []string{
	"Apex Athletics", "Cheer Dynasty", "Gravity Elite", "Midwest Storm",
	"Northern Lights All Stars", "Pacific Coast Magic", "Rebel Athletics",
	"Summit Cheer", "Twist and Shout", "Vortex All Stars",
}

var teamNames = []string{
	"Black Ops", "Crush", "Fearless", "Lady Lux", "Obsession",
	"Reign", "Smoke", "Steel", "Venom", "Wildcats",
}

var eventNames = []string{
	"Battle at the Beach", "Cheersport Nationals", "Duel in the Desert",
	"MAJORS", "NCA All-Star Nationals", "One Up Grand Nationals",
	"Spirit of Hope", "The Summit", "UCA International All Star",
	"WSF Worlds Bid Qualifier",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, bound) using crypto/rand.
func getRandomInt(bound int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(bound)))
	return int(n.Int64())
}

// Generate creates synthetic result rows for the configured number of teams.
// Each team keeps one division for the whole season and attends
// EventsPerTeam distinct competitions.
func Generate(ctx context.Context, config *Config, stats *Stats) ([]model.ResultRecord, error) {
	logger.Get().Info(ctx, "generating synthetic season rows",
		logger.Int("teams", config.NumTeams),
		logger.Int("eventsPerTeam", config.EventsPerTeam))

	teamIDs := make([]string, config.NumTeams)
	for i := 0; i < config.NumTeams; i++ {
		teamIDs[i] = uuid.New().String()
	}

	type teamResult struct {
		index int
		rows  []model.ResultRecord
		err   error
	}

	resultChan := make(chan teamResult, config.NumTeams)

	workerCount := minInt(config.Workers, config.NumTeams)
	if workerCount < 1 {
		workerCount = 1
	}
	teamsPerWorker := config.NumTeams / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * teamsPerWorker
		end := start + teamsPerWorker
		if worker == workerCount-1 {
			end = config.NumTeams // Last worker gets remaining teams
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- teamResult{index: i, err: ctx.Err()}
					return
				default:
					rows := generateTeamSeason(i, teamIDs[i], config)
					resultChan <- teamResult{index: i, rows: rows}
				}
			}
		}(start, end)
	}

	rowsByTeam := make([][]model.ResultRecord, config.NumTeams)
	for i := 0; i < config.NumTeams; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during row generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate rows for team %d: %w", result.index, result.err)
			}
			rowsByTeam[result.index] = result.rows
		}
	}

	rows := make([]model.ResultRecord, 0, config.NumTeams*config.EventsPerTeam)
	for _, teamRows := range rowsByTeam {
		rows = append(rows, teamRows...)
	}

	stats.TeamsGenerated = config.NumTeams
	stats.RowsGenerated = len(rows)
	logger.Get().Info(ctx, "generated rows successfully", logger.Int("count", len(rows)))

	return rows, nil
}

// generateTeamSeason creates one team's rows across its season.
func generateTeamSeason(index int, teamID string, config *Config) []model.ResultRecord {
	program := programNames[index%len(programNames)]
	team := teamNames[(index/len(programNames))%len(teamNames)] + " " + strconv.Itoa(index)
	division := divisionLabels[index%len(divisionLabels)]
	profile := getRandomInt(scoreProfileCount)

	season := config.Season
	if season == "" {
		season = "2025"
	}

	rows := make([]model.ResultRecord, 0, config.EventsPerTeam)
	for e := 0; e < config.EventsPerTeam; e++ {
		event := eventNames[(index+e)%len(eventNames)]
		// Weekends spread across the season, two per month from November.
		month := 11 + (e/2+index%2)%6
		year := season
		if month > 12 {
			month -= 12
			y, _ := strconv.Atoi(season)
			year = strconv.Itoa(y + 1)
		}
		day := 7 + (e%2)*14
		weekend := fmt.Sprintf("%s-%02d-%02d", year, month, day)

		row := model.ResultRecord{
			"team_id":      teamID,
			"program_name": program,
			"team_name":    team,
			"division":     division,
			"event_id":     "evt_" + uuid.New().String(),
			"event_name":   event,
			"weekend_date": weekend,
			"event_score":  generateProfiledScore(profile),
		}
		if config.MessyRatio > 0 && getRandomFloat() < config.MessyRatio {
			messRow(row)
		}
		rows = append(rows, row)
	}
	return rows
}

// messRow degrades a row the way real upstream views do: stringly-typed
// scores, missing identity columns, alternate column names.
func messRow(row model.ResultRecord) {
	switch getRandomInt(messyVariantCount) {
	case 0:
		// Score arrives as a string.
		if score, ok := row["event_score"].(float64); ok {
			row["event_score"] = strconv.FormatFloat(score, 'f', 2, 64)
		}
	case 1:
		// No explicit team id; identity falls back to program+team.
		delete(row, "team_id")
	case 2:
		// Event id missing; dedup falls back to the source URL.
		delete(row, "event_id")
		row["source_url"] = "https://results.example.com/" + uuid.New().String()
	case 3:
		// Alternate column names for the same fields.
		row["gym_name"] = row["program_name"]
		delete(row, "program_name")
		row["score"] = row["event_score"]
		delete(row, "event_score")
	}
}

// generateProfiledScore creates a score drawn from the team's profile so the
// resulting leaderboard has realistic spread.
func generateProfiledScore(profile int) float64 {
	switch profile {
	case caseAverageTeam:
		return averageTeamMin + getRandomFloat()*averageTeamRange
	case caseStrongTeam:
		return strongTeamMin + getRandomFloat()*strongTeamRange
	case caseWeakTeam:
		return weakTeamMin + getRandomFloat()*weakTeamRange
	case caseEliteTeam:
		return eliteTeamMin + getRandomFloat()*eliteTeamRange
	case caseMidTeam:
		return midTeamMin + getRandomFloat()*midTeamRange
	case caseWideRange:
		return wideTeamMin + getRandomFloat()*wideTeamRange
	default:
		return wideTeamMin + getRandomFloat()*wideTeamRange
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
