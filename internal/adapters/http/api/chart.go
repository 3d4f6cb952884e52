// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/ranking"
)

// ChartDependencies defines the interface for chart series queries.
type ChartDependencies interface {
	ChartSeries(ctx context.Context, f ranking.Filters) ([]model.ChartPoint, error)
}

// ChartHandler handles chart series requests.
type ChartHandler struct {
	deps ChartDependencies
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps ChartDependencies) *ChartHandler {
	return &ChartHandler{deps: deps}
}

// HandleGetChart handles GET /rankings/chart requests.
func (h *ChartHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	series, err := h.deps.ChartSeries(r.Context(), f)
	if err != nil {
		writeRankingError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}
