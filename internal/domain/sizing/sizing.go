// Package sizing resolves one authoritative team size for a season from a
// history of per-row size observations.
package sizing

import (
	"sort"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
)

// Resolve returns the most recent non-empty size in the history, or "" when
// no observation ever carried a size. A team's size classification can change
// over a season; the latest known classification is the best predictor of
// current size. An unresolved size is never invented: the team simply does
// not match concrete size filters.
//
// The history may arrive in any order; observations are scanned newest-first
// by weekend date (ISO dates compare lexicographically).
func Resolve(history []model.SizeObservation) string {
	if len(history) == 0 {
		return ""
	}
	sorted := make([]model.SizeObservation, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeekendDate > sorted[j].WeekendDate
	})
	for _, obs := range sorted {
		if obs.Size != "" {
			return obs.Size
		}
	}
	return ""
}
