// Package dedupe collapses multiple result rows recorded for the same
// real-world competition into a single representative score. Competitions are
// often recorded as several rounds or heats; without this step a team that
// performed four times at one weekend would have that competition weighted 4x
// in its season average.
package dedupe

import "github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"

// CompetitionKey resolves the stable identity of the competition a record
// belongs to: the explicit event identifier, else the source URL, else a
// composite of event display name and weekend date. Returns "" when nothing
// usable exists; such records cannot be counted.
func CompetitionKey(f model.Fields) string {
	if f.EventKey != "" {
		return f.EventKey
	}
	if f.SourceURL != "" {
		return f.SourceURL
	}
	if f.EventName != "" || f.WeekendDate != "" {
		return f.EventName + "@" + f.WeekendDate
	}
	return ""
}

// Collapse maps each competition identity found in records to the maximum
// score observed for it. Records without a usable score or without a
// competition identity never contribute; in particular an absent score is
// never treated as zero.
//
// The invariant downstream aggregation relies on: one score per team per
// competition, ever, regardless of how many rounds were recorded.
func Collapse(records []model.Fields) map[string]float64 {
	best := make(map[string]float64, len(records))
	for _, f := range records {
		if !f.HasScore {
			continue
		}
		key := CompetitionKey(f)
		if key == "" {
			continue
		}
		if current, seen := best[key]; !seen || f.Score > current {
			best[key] = f.Score
		}
	}
	return best
}
