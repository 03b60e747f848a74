package api

import (
	"net/http"

	"github.com/okian/reelmatch/internal/domain/model"
)

type groupRequest struct {
	Profiles []model.Profile `json:"profiles"`
}

// ReportsHandler handles compatibility report requests. Unavailable reports
// are still 200 responses; the body says why.
type ReportsHandler struct {
	deps Dependencies
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps Dependencies) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// HandlePair handles POST /v1/reports/pair requests.
func (h *ReportsHandler) HandlePair(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if !decode(w, r, &req) {
		return
	}
	rep, err := h.deps.GeneratePairReport(r.Context(), req.Profile1, req.Profile2)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleGroup handles POST /v1/reports/group requests.
func (h *ReportsHandler) HandleGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if !decode(w, r, &req) {
		return
	}
	rep, err := h.deps.GenerateGroupReport(r.Context(), req.Profiles)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
