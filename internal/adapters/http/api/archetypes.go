package api

import (
	"errors"
	"net/http"

	"github.com/okian/reelmatch/internal/domain/model"
)

type classifyRequest struct {
	Profile *model.Profile `json:"profile"`
}

// ArchetypeHandler handles archetype classification requests.
type ArchetypeHandler struct {
	deps Dependencies
}

// NewArchetypeHandler creates a new archetype handler.
func NewArchetypeHandler(deps Dependencies) *ArchetypeHandler {
	return &ArchetypeHandler{deps: deps}
}

// HandleClassify handles POST /v1/archetypes/classify requests.
func (h *ArchetypeHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Profile == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, errors.New("missing profile"))
		return
	}
	res, err := h.deps.ClassifyArchetype(r.Context(), req.Profile)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
