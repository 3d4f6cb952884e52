// Package ranking turns deduplicated competition scores into a rank-ordered
// season standing per (team identity x track).
package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/dedupe"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/sizing"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/track"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/metrics"
)

// Default aggregation configuration constants.
const (
	defaultMinEvents = 2
	defaultLimit     = 50
	defaultPrecision = 2
)

// groupSeparator joins team identity and track label into one group key.
// Unit separator cannot occur in either part.
const groupSeparator = "\x1f"

// Aggregator computes season rankings from resolved result records. It holds
// no state across calls; every Aggregate invocation is an independent,
// side-effect-free computation over its inputs.
type Aggregator struct {
	minEvents int
	limit     int
	precision int
}

// New constructs an Aggregator with default configuration.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		minEvents: defaultMinEvents,
		limit:     defaultLimit,
		precision: defaultPrecision,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// group accumulates the records for one (team identity x track) pair.
type group struct {
	teamKey string
	track   string
	program string
	team    string
	level   string
	age     string
	flex    bool
	d2      bool
	records []model.Fields
}

// Aggregate groups records by (team identity x track), collapses rounds to
// one best score per competition, averages those scores, resolves team size,
// applies categorical filters and the minimum-events filter, and returns the
// rank-ordered result.
//
// Drop policy (not errors): records with no usable team identity, no program
// or team name, or an empty track label are excluded silently. The full
// ranked population is computed before the display limit truncates it.
func (a *Aggregator) Aggregate(records []model.Fields, f Filters) []model.TeamRanking {
	groups := make(map[string]*group, len(records))
	order := make([]string, 0, len(records))

	for _, rec := range records {
		if rec.TeamKey == "" || rec.ProgramName == "" || rec.TeamName == "" {
			metrics.RecordRecordDropped("no_identity")
			continue
		}
		label := track.Classify(rec)
		if label == "" {
			metrics.RecordRecordDropped("no_track")
			continue
		}
		key := rec.TeamKey + groupSeparator + label
		g, ok := groups[key]
		if !ok {
			g = &group{
				teamKey: rec.TeamKey,
				track:   label,
				program: rec.ProgramName,
				team:    rec.TeamName,
				level:   rec.Level,
				age:     rec.AgeBracket,
				flex:    rec.Flex,
				d2:      rec.D2,
			}
			groups[key] = g
			order = append(order, key)
		}
		g.records = append(g.records, rec)
	}

	minEvents := f.MinEvents
	if minEvents < 1 {
		minEvents = a.minEvents
	}

	// Insertion order before the stable sort keeps tie ordering reproducible
	// across runs over identical input.
	ranked := make([]model.TeamRanking, 0, len(order))
	for _, key := range order {
		g := groups[key]

		if f.Level != "" && !strings.EqualFold(g.level, f.Level) {
			continue
		}
		if f.Age != "" && !strings.EqualFold(g.age, f.Age) {
			continue
		}
		if f.FlexOnly && !g.flex {
			continue
		}
		if f.D2Only && !g.d2 {
			continue
		}

		size := sizing.Resolve(sizeHistory(g.records))
		// An unresolved size never matches a concrete size filter.
		if f.Size != "" && size != f.Size {
			continue
		}

		best := dedupe.Collapse(g.records)
		events := len(best)
		if events < minEvents {
			continue
		}

		var sum float64
		for _, score := range best {
			sum += score
		}
		avg := 0.0
		if events > 0 {
			avg = roundTo(sum/float64(events), a.precision)
		}

		ranked = append(ranked, model.TeamRanking{
			TeamKey:     g.teamKey,
			ProgramName: g.program,
			TeamName:    g.team,
			Track:       g.track,
			Bucket:      track.Bucket(g.track, size),
			Size:        size,
			Events:      events,
			AvgScore:    avg,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvgScore > ranked[j].AvgScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	limit := a.limit
	if f.Limit > 0 && f.Limit < limit {
		limit = f.Limit
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// ChartSeries derives a top-N label/value series from a ranked list, where
// value is the season average and label is the team display name.
func ChartSeries(ranked []model.TeamRanking, n int) []model.ChartPoint {
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	series := make([]model.ChartPoint, len(ranked))
	for i, r := range ranked {
		series[i] = model.ChartPoint{Label: r.TeamName, Value: r.AvgScore}
	}
	return series
}

// sizeHistory extracts the (weekend, size) observations for one group.
func sizeHistory(records []model.Fields) []model.SizeObservation {
	history := make([]model.SizeObservation, 0, len(records))
	for _, rec := range records {
		history = append(history, model.SizeObservation{
			WeekendDate: rec.WeekendDate,
			Size:        rec.Size,
		})
	}
	return history
}

func roundTo(x float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Round(x*scale) / scale
}
