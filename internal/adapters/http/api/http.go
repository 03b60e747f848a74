// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/okian/reelmatch/internal/domain/archetype"
	"github.com/okian/reelmatch/internal/domain/filter"
	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/scoring"
)

// maxBodyBytes bounds request bodies; rank requests carry whole candidate pools.
const maxBodyBytes = 8 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ScorePair(ctx context.Context, a, b *model.Profile) (scoring.Result, error)
	RankMatches(ctx context.Context, requester *model.Profile, pool []model.Profile, limit int, f *filter.Filters) ([]model.Match, error)
	ProcessQuizCompletion(ctx context.Context, userID string, answers []model.AnswerInput) (model.QuizAttempt, error)
	ClassifyArchetype(ctx context.Context, p *model.Profile) (archetype.Result, error)
	GeneratePairReport(ctx context.Context, a, b *model.Profile) (model.CompatibilityReport, error)
	GenerateGroupReport(ctx context.Context, profiles []model.Profile) (model.GroupCompatibilityReport, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	pairsHandler     *PairsHandler
	matchesHandler   *MatchesHandler
	quizHandler      *QuizHandler
	archetypeHandler *ArchetypeHandler
	reportsHandler   *ReportsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		pairsHandler:     NewPairsHandler(deps),
		matchesHandler:   NewMatchesHandler(deps),
		quizHandler:      NewQuizHandler(deps),
		archetypeHandler: NewArchetypeHandler(deps),
		reportsHandler:   NewReportsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/pairs/score", MetricsMiddleware(s.pairsHandler.HandleScore, "pairs_score"))
	mux.HandleFunc("/v1/matches/rank", MetricsMiddleware(s.matchesHandler.HandleRank, "matches_rank"))
	mux.HandleFunc("/v1/quiz/attempts", MetricsMiddleware(s.quizHandler.HandleAttempt, "quiz_attempts"))
	mux.HandleFunc("/v1/archetypes/classify", MetricsMiddleware(s.archetypeHandler.HandleClassify, "archetypes_classify"))
	mux.HandleFunc("/v1/reports/pair", MetricsMiddleware(s.reportsHandler.HandlePair, "reports_pair"))
	mux.HandleFunc("/v1/reports/group", MetricsMiddleware(s.reportsHandler.HandleGroup, "reports_group"))
}

type errorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []filter.FieldError `json:"fields,omitempty"`
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
	resp := errorResponse{Code: code, Message: msg}
	var verr *filter.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	writeJSON(w, status, resp)
}

// decode reads a JSON body into v. Only POST is accepted.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, nil)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeBadRequest, err)
			return false
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return false
	}
	return true
}
