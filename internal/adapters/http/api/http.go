// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/ranking"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Rankings computes the ranked list for one filter selection.
	Rankings(ctx context.Context, f ranking.Filters) ([]model.TeamRanking, error)

	// ChartSeries derives the top-N label/value series for chart rendering.
	ChartSeries(ctx context.Context, f ranking.Filters) ([]model.ChartPoint, error)

	// Weekends lists the distinct competition weekends of the season.
	Weekends(ctx context.Context) ([]string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	rankingsHandler *RankingsHandler
	chartHandler    *ChartHandler
	weekendsHandler *WeekendsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		rankingsHandler: NewRankingsHandler(deps, maxLimit),
		chartHandler:    NewChartHandler(deps),
		weekendsHandler: NewWeekendsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/rankings/chart", MetricsMiddleware(s.chartHandler.HandleGetChart, "rankings_chart"))
	mux.HandleFunc("/weekends", MetricsMiddleware(s.weekendsHandler.HandleGetWeekends, "weekends"))
}

// parseFilters builds a filter selection from request query parameters.
// Unknown values for categorical parameters are passed through: a filter
// that matches nothing is a valid (empty) selection, not an error.
func parseFilters(r *http.Request) (ranking.Filters, error) {
	q := r.URL.Query()
	f := ranking.Filters{
		Level:  strings.TrimSpace(q.Get("level")),
		Age:    strings.TrimSpace(q.Get("age")),
		Size:   strings.TrimSpace(q.Get("size")),
		Query:  strings.TrimSpace(q.Get("q")),
		Before: strings.TrimSpace(q.Get("before")),
	}

	switch mode := strings.ToLower(q.Get("mode")); mode {
	case "", "all":
	case "flex":
		f.FlexOnly = true
	case "d2":
		f.D2Only = true
	default:
		return ranking.Filters{}, ErrBadRequest
	}

	if raw := q.Get("min_events"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return ranking.Filters{}, ErrBadRequest
		}
		f.MinEvents = n
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return ranking.Filters{}, ErrBadRequest
		}
		f.Limit = n
	}

	return f, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
