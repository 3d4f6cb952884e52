// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// WeekendsDependencies defines the interface for weekend listing.
type WeekendsDependencies interface {
	Weekends(ctx context.Context) ([]string, error)
}

// WeekendsHandler handles weekend listing requests.
type WeekendsHandler struct {
	deps WeekendsDependencies
}

// NewWeekendsHandler creates a new weekends handler.
func NewWeekendsHandler(deps WeekendsDependencies) *WeekendsHandler {
	return &WeekendsHandler{deps: deps}
}

// HandleGetWeekends handles GET /weekends requests. The weekend list feeds
// the date-bound filter dropdown.
func (h *WeekendsHandler) HandleGetWeekends(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_weekends"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	weekends, err := h.deps.Weekends(r.Context())
	if err != nil {
		writeRankingError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, weekends)
}
