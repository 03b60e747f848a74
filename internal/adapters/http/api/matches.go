package api

import (
	"errors"
	"net/http"

	"github.com/okian/reelmatch/internal/domain/filter"
	"github.com/okian/reelmatch/internal/domain/model"
)

type rankRequest struct {
	Requester *model.Profile  `json:"requester"`
	Pool      []model.Profile `json:"pool"`
	Limit     int             `json:"limit"`
	Filters   *filter.Filters `json:"filters,omitempty"`
}

type rankResponse struct {
	Matches []model.Match `json:"matches"`
}

// MatchesHandler handles ranking requests.
type MatchesHandler struct {
	deps Dependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleRank handles POST /v1/matches/rank requests.
func (h *MatchesHandler) HandleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Requester == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, errors.New("missing requester"))
		return
	}
	matches, err := h.deps.RankMatches(r.Context(), req.Requester, req.Pool, req.Limit, req.Filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}
	writeJSON(w, http.StatusOK, rankResponse{Matches: matches})
}
