// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/adapters/fetch"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/adapters/store"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/ranking"
)

// RankingsDependencies defines the interface for ranking table queries.
type RankingsDependencies interface {
	Rankings(ctx context.Context, f ranking.Filters) ([]model.TeamRanking, error)
}

// RankingsHandler handles ranking table requests.
type RankingsHandler struct {
	deps     RankingsDependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingsDependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRankings handles GET /rankings requests.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rankings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if f.Limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	ranked, err := h.deps.Rankings(r.Context(), f)
	if err != nil {
		writeRankingError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

// writeRankingError maps pipeline failures onto HTTP statuses. A superseded
// fetch means a newer filter selection is already being served; the store
// sentinels mean the upstream is down and the caller gets an explicit error
// with an empty result state, never stale data.
func writeRankingError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, fetch.ErrSuperseded):
		writeError(w, http.StatusConflict, "superseded", Wrap(op, err))
	case errors.Is(err, store.ErrUnavailable),
		errors.Is(err, store.ErrBadStatus),
		errors.Is(err, store.ErrDecode):
		writeError(w, http.StatusBadGateway, "store_unavailable", WrapKind(op, ErrUpstream, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
