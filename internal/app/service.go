// Package service provides the matching facade that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/reelmatch/internal/domain/archetype"
	"github.com/okian/reelmatch/internal/domain/filter"
	"github.com/okian/reelmatch/internal/domain/ids"
	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/quiz"
	"github.com/okian/reelmatch/internal/domain/ranking"
	"github.com/okian/reelmatch/internal/domain/refdata"
	"github.com/okian/reelmatch/internal/domain/report"
	"github.com/okian/reelmatch/internal/domain/scoring"
	"github.com/okian/reelmatch/pkg/logger"
)

// Service exposes the matching operations over caller-supplied profiles.
type Service struct {
	mu sync.RWMutex

	// Core components
	quiz       *quiz.Engine
	classifier *archetype.Classifier
	scorer     *scoring.Scorer
	pipeline   *filter.Pipeline
	ranker     *ranking.Ranker
	reports    *report.Generator

	// Configuration
	tables           *refdata.Tables
	questionBankPath string
	weights          scoring.Weights
	ids              ids.Generator
	now              func() time.Time
	rankConcurrency  int
	defaultRankLimit int
	maxRankLimit     int
	maxGroupSize     int

	// State
	started bool
	stats   counters

	// Logging
	logger logger.Logger
}

type counters struct {
	pairsScored     atomic.Int64
	ranks           atomic.Int64
	quizAttempts    atomic.Int64
	classifications atomic.Int64
	pairReports     atomic.Int64
	groupReports    atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWeights sets the pairwise scoring weights. Invalid tables are ignored.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		if w.Validate() == nil {
			s.weights = w
		}
	}
}

// WithReferenceData replaces the built-in reference tables.
func WithReferenceData(t *refdata.Tables) Option {
	return func(s *Service) {
		if t != nil {
			s.tables = t
		}
	}
}

// WithQuestionBankPath loads the quiz question bank from a YAML file on Start.
func WithQuestionBankPath(path string) Option {
	return func(s *Service) {
		s.questionBankPath = path
	}
}

// WithIDGenerator sets the generator for match and quiz attempt IDs.
func WithIDGenerator(g ids.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRankConcurrency bounds how many candidates one ranking scores in parallel.
func WithRankConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.rankConcurrency = n
		}
	}
}

// WithDefaultRankLimit sets the limit used when a rank request omits one.
func WithDefaultRankLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultRankLimit = n
		}
	}
}

// WithMaxRankLimit caps the limit a rank request may ask for.
func WithMaxRankLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRankLimit = n
		}
	}
}

// WithMaxGroupSize caps the number of profiles in a group report.
func WithMaxGroupSize(n int) Option {
	return func(s *Service) {
		if n > 1 {
			s.maxGroupSize = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		tables:           refdata.Default(),
		weights:          scoring.DefaultWeights(),
		ids:              ids.UUID{},
		now:              time.Now,
		rankConcurrency:  runtime.NumCPU(),
		defaultRankLimit: 20,
		maxRankLimit:     100,
		maxGroupSize:     12,
		logger:           nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultRankLimit > s.maxRankLimit {
		s.defaultRankLimit = s.maxRankLimit
	}

	return s
}

// Start loads reference data and builds the matching components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matching service...")

	if s.questionBankPath != "" {
		qs, err := refdata.LoadQuestionBank(s.questionBankPath)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}
		tables, err := s.tables.WithQuestions(qs)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}
		s.tables = tables
		s.logger.Info(ctx, "using question bank",
			logger.String("path", s.questionBankPath),
			logger.Int("questions", len(qs)),
		)
	}

	s.build()

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("rankConcurrency", s.rankConcurrency),
		logger.Int("maxRankLimit", s.maxRankLimit),
		logger.Int("questions", len(s.tables.Questions())),
	)

	return nil
}

func (s *Service) build() {
	l := s.logger
	s.classifier = archetype.New(s.tables, archetype.WithLogger(l))
	s.quiz = quiz.New(s.tables,
		quiz.WithIDGenerator(s.ids),
		quiz.WithClock(s.now),
		quiz.WithLogger(l),
	)
	s.scorer = scoring.New(s.tables,
		scoring.WithWeights(s.weights),
		scoring.WithClassifier(s.classifier),
		scoring.WithClock(s.now),
		scoring.WithLogger(l),
	)
	s.pipeline = filter.New(s.tables, filter.WithLogger(l))
	s.ranker = ranking.New(s.scorer, s.pipeline,
		ranking.WithIDGenerator(s.ids),
		ranking.WithClock(s.now),
		ranking.WithConcurrency(s.rankConcurrency),
		ranking.WithLogger(l),
	)
	s.reports = report.New(s.tables, report.WithLogger(l))
}

// Stop marks the service as stopped. Subsequent operations return ErrNotStarted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "matching service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// ScorePair scores two profiles against each other. Both profiles are
// normalized in place.
func (s *Service) ScorePair(ctx context.Context, a, b *model.Profile) (scoring.Result, error) {
	if err := s.ready(); err != nil {
		return scoring.Result{}, err
	}
	a, b = orEmpty(a), orEmpty(b)
	normalize(a, b)
	res := s.scorer.Score(ctx, a, b)
	s.stats.pairsScored.Add(1)
	return res, nil
}

// RankMatches filters and scores pool for requester and returns the best
// matches. A limit of zero applies the default limit.
func (s *Service) RankMatches(ctx context.Context, requester *model.Profile, pool []model.Profile, limit int, f *filter.Filters) ([]model.Match, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	switch {
	case limit == 0:
		limit = s.defaultRankLimit
	case limit < 0 || limit > s.maxRankLimit:
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrLimitExceeded, s.maxRankLimit)
	}

	requester = orEmpty(requester)
	normalize(requester)
	for i := range pool {
		pool[i].Normalize()
	}
	matches, err := s.ranker.Rank(ctx, requester, pool, limit, f)
	if err != nil {
		return nil, err
	}
	s.stats.ranks.Add(1)
	return matches, nil
}

// ProcessQuizCompletion scores a completed quiz into a new attempt.
func (s *Service) ProcessQuizCompletion(ctx context.Context, userID string, answers []model.AnswerInput) (model.QuizAttempt, error) {
	if err := s.ready(); err != nil {
		return model.QuizAttempt{}, err
	}
	attempt, err := s.quiz.Process(ctx, userID, answers)
	if err != nil {
		return model.QuizAttempt{}, err
	}
	s.stats.quizAttempts.Add(1)
	return attempt, nil
}

// ClassifyArchetype derives a behavioral archetype from a profile. The profile
// is not modified.
func (s *Service) ClassifyArchetype(ctx context.Context, p *model.Profile) (archetype.Result, error) {
	if err := s.ready(); err != nil {
		return archetype.Result{}, err
	}
	p = orEmpty(p)
	normalize(p)
	res := s.classifier.Classify(ctx, p)
	s.stats.classifications.Add(1)
	return res, nil
}

// GeneratePairReport builds a quiz-based compatibility report for two profiles.
func (s *Service) GeneratePairReport(ctx context.Context, a, b *model.Profile) (model.CompatibilityReport, error) {
	if err := s.ready(); err != nil {
		return model.CompatibilityReport{}, err
	}
	rep := s.reports.Pair(ctx, orEmpty(a), orEmpty(b))
	s.stats.pairReports.Add(1)
	return rep, nil
}

// GenerateGroupReport builds a quiz-based compatibility report for a group.
func (s *Service) GenerateGroupReport(ctx context.Context, profiles []model.Profile) (model.GroupCompatibilityReport, error) {
	if err := s.ready(); err != nil {
		return model.GroupCompatibilityReport{}, err
	}
	if len(profiles) > s.maxGroupSize {
		return model.GroupCompatibilityReport{}, fmt.Errorf("%w: %d members, at most %d", ErrGroupTooLarge, len(profiles), s.maxGroupSize)
	}
	rep := s.reports.Group(ctx, profiles)
	s.stats.groupReports.Add(1)
	return rep, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":          s.started,
		"rankConcurrency":  s.rankConcurrency,
		"defaultRankLimit": s.defaultRankLimit,
		"maxRankLimit":     s.maxRankLimit,
		"maxGroupSize":     s.maxGroupSize,
		"questions":        len(s.tables.Questions()),
		"pairsScored":      s.stats.pairsScored.Load(),
		"ranks":            s.stats.ranks.Load(),
		"quizAttempts":     s.stats.quizAttempts.Load(),
		"classifications":  s.stats.classifications.Load(),
		"pairReports":      s.stats.pairReports.Load(),
		"groupReports":     s.stats.groupReports.Load(),
	}
}

// MaxRankLimit returns the largest limit RankMatches accepts.
func (s *Service) MaxRankLimit() int { return s.maxRankLimit }

func orEmpty(p *model.Profile) *model.Profile {
	if p == nil {
		return &model.Profile{}
	}
	return p
}

func normalize(profiles ...*model.Profile) {
	for _, p := range profiles {
		if p != nil {
			p.Normalize()
		}
	}
}
