// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"fastbreak/internal/domain/types"
)

// RankingsDependencies defines the interface for ranking reads.
type RankingsDependencies interface {
	TopAdds(ctx context.Context, n int) ([]types.Entry, error)
	DropCandidates(ctx context.Context, n int) ([]types.Entry, error)
}

// RankingsHandler handles ranked list requests.
type RankingsHandler struct {
	deps     RankingsDependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingsDependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{deps: deps, maxLimit: maxLimit}
}

type rankingsResponse struct {
	DropCandidates []types.Entry `json:"drop_candidates"`
	TopAdds        []types.Entry `json:"top_adds"`
}

// HandleGetRankings handles GET /rankings?limit=N requests. The
// response pairs the weakest roster players with the strongest waiver
// players so a caller can render both lists from one call.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rankings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	drops, err := h.deps.DropCandidates(r.Context(), n)
	if err != nil {
		h.writeListError(w, op, err)
		return
	}
	adds, err := h.deps.TopAdds(r.Context(), n)
	if err != nil {
		h.writeListError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rankingsResponse{DropCandidates: drops, TopAdds: adds})
}

func (h *RankingsHandler) writeListError(w http.ResponseWriter, op string, err error) {
	if isNoSnapshot(err) {
		writeError(w, http.StatusServiceUnavailable, "no_snapshot", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
