// Package track derives a team's competitive track from resolved fields.
// A track is the division category independent of team size: level, age
// bracket, and the Flex/D2 flags.
package track

import (
	"strings"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
)

// Classify builds the track label by concatenating, in fixed order, only the
// parts that are present: level, age bracket, "Flex", "D2", joined by single
// spaces. An empty label means the record cannot be grouped; callers must
// drop such records from ranking.
func Classify(f model.Fields) string {
	parts := make([]string, 0, 4)
	if f.Level != "" {
		parts = append(parts, f.Level)
	}
	if f.AgeBracket != "" {
		parts = append(parts, f.AgeBracket)
	}
	if f.Flex {
		parts = append(parts, "Flex")
	}
	if f.D2 {
		parts = append(parts, "D2")
	}
	return strings.Join(parts, " ")
}

// Bucket is the display label for a ranked team: the track with the resolved
// size appended when resolution succeeded, else the track alone. No
// placeholder token is ever surfaced for an unresolved size.
func Bucket(trackLabel, size string) string {
	if size == "" {
		return trackLabel
	}
	return trackLabel + " " + size
}
