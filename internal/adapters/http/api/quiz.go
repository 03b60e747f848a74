package api

import (
	"net/http"

	"github.com/okian/reelmatch/internal/domain/model"
)

type quizRequest struct {
	UserID  string              `json:"userId"`
	Answers []model.AnswerInput `json:"answers"`
}

// QuizHandler handles quiz completion requests.
type QuizHandler struct {
	deps Dependencies
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(deps Dependencies) *QuizHandler {
	return &QuizHandler{deps: deps}
}

// HandleAttempt handles POST /v1/quiz/attempts requests.
func (h *QuizHandler) HandleAttempt(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decode(w, r, &req) {
		return
	}
	attempt, err := h.deps.ProcessQuizCompletion(r.Context(), req.UserID, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, attempt)
}
