package api

import (
	"net/http"

	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/scoring"
)

type pairRequest struct {
	Profile1 *model.Profile `json:"profile1"`
	Profile2 *model.Profile `json:"profile2"`
}

type scoreResponse struct {
	scoring.Result
	SharedContent []string `json:"sharedContent"`
}

// PairsHandler handles pairwise scoring requests.
type PairsHandler struct {
	deps Dependencies
}

// NewPairsHandler creates a new pairs handler.
func NewPairsHandler(deps Dependencies) *PairsHandler {
	return &PairsHandler{deps: deps}
}

// HandleScore handles POST /v1/pairs/score requests.
func (h *PairsHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.deps.ScorePair(r.Context(), req.Profile1, req.Profile2)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	shared := res.SharedContent()
	if shared == nil {
		shared = []string{}
	}
	writeJSON(w, http.StatusOK, scoreResponse{Result: res, SharedContent: shared})
}
