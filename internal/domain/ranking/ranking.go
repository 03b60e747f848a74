// Package ranking filters and scores a candidate pool for a requester and
// returns the best matches.
package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/reelmatch/internal/domain/filter"
	"github.com/okian/reelmatch/internal/domain/ids"
	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/scoring"
	"github.com/okian/reelmatch/pkg/logger"
	"github.com/okian/reelmatch/pkg/metrics"
)

// Option configures a Ranker.
type Option func(*Ranker)

// WithIDGenerator sets the generator for match IDs.
func WithIDGenerator(g ids.Generator) Option {
	return func(r *Ranker) {
		if g != nil {
			r.ids = g
		}
	}
}

// WithClock sets the source of match creation times.
func WithClock(now func() time.Time) Option {
	return func(r *Ranker) {
		if now != nil {
			r.now = now
		}
	}
}

// WithConcurrency bounds how many candidates are scored at once.
func WithConcurrency(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Ranker) {
		if l != nil {
			r.log = l.Named("ranking")
		}
	}
}

// Ranker applies the filter pipeline and scorer across a pool.
type Ranker struct {
	scorer      *scoring.Scorer
	pipeline    *filter.Pipeline
	ids         ids.Generator
	now         func() time.Time
	concurrency int
	log         logger.Logger
}

// New creates a Ranker.
func New(scorer *scoring.Scorer, pipeline *filter.Pipeline, opts ...Option) *Ranker {
	r := &Ranker{
		scorer:      scorer,
		pipeline:    pipeline,
		ids:         ids.UUID{},
		now:         time.Now,
		concurrency: runtime.NumCPU(),
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type scored struct {
	candidate *model.Profile
	result    scoring.Result
}

// Rank returns matches for requester from pool, best first. Exact score ties
// keep pool order. A limit of zero or less returns every match. Filters are
// resolved against the requester's preferences and validated first; a
// malformed filter is returned as an error wrapping filter.ErrInvalidFilter.
func (r *Ranker) Rank(ctx context.Context, requester *model.Profile, pool []model.Profile, limit int, override *filter.Filters) ([]model.Match, error) {
	start := time.Now()
	f, err := filter.Resolve(requester, override)
	if err != nil {
		return nil, err
	}

	slots := make([]*scored, len(pool))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := range pool {
		cand := &pool[i]
		if cand == requester || (requester.ID != "" && cand.ID == requester.ID) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, ok := r.pipeline.Check(gctx, requester, cand, f); !ok {
				return nil
			}
			res := r.scorer.Score(gctx, requester, cand)
			if !passesThresholds(requester, res, f) {
				return nil
			}
			slots[i] = &scored{candidate: cand, result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rank candidates: %w", err)
	}

	var kept []*scored
	for _, s := range slots {
		if s != nil {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].result.Score > kept[j].result.Score
	})
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	created := r.now()
	matches := make([]model.Match, len(kept))
	for i, s := range kept {
		matches[i] = toMatch(r.ids.NewID(), requester.ID, s, created)
	}

	metrics.RecordRank(len(pool), len(matches), float64(time.Since(start).Microseconds())/1000)
	r.log.Info(ctx, "ranked candidates",
		logger.String("user_id", requester.ID),
		logger.Int("pool", len(pool)),
		logger.Int("matches", len(matches)),
		logger.Bool("override", override != nil))
	return matches, nil
}

func passesThresholds(requester *model.Profile, res scoring.Result, f filter.Filters) bool {
	if res.Score < f.MinScore {
		return false
	}
	if requester.Premium && f.MinAdvancedScore > 0 {
		return AdvancedScore(res) >= f.MinAdvancedScore
	}
	return true
}

// AdvancedScore averages the sub-scores that fired for a pair: quiz, snack,
// debate and emotional tone. It is 0 when none did.
func AdvancedScore(res scoring.Result) float64 {
	sum, n := 0.0, 0
	for _, v := range []float64{res.SubScores.Quiz, res.SubScores.Snack, res.SubScores.Debate, res.SubScores.EmotionalTone} {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func toMatch(id, requesterID string, s *scored, created time.Time) model.Match {
	return model.Match{
		ID:                         id,
		User1ID:                    requesterID,
		User2ID:                    s.candidate.ID,
		MatchScore:                 s.result.Score,
		SharedContent:              s.result.SharedContent(),
		Description:                s.result.Description,
		QuizCompatibility:          s.result.SubScores.Quiz,
		SnackCompatibility:         s.result.SubScores.Snack,
		DebateCompatibility:        s.result.SubScores.Debate,
		EmotionalToneCompatibility: s.result.SubScores.EmotionalTone,
		CreatedAt:                  created,
	}
}
