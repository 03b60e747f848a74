// Package scoring computes the pairwise compatibility of two profiles: a
// bounded score, the shared content behind it, per-factor sub-scores and a
// generated description.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/okian/reelmatch/internal/domain/archetype"
	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/refdata"
	"github.com/okian/reelmatch/pkg/logger"
	"github.com/okian/reelmatch/pkg/metrics"
)

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights replaces the weight table. Invalid tables are ignored; callers
// that load weights from configuration validate them first.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		if w.Validate() == nil {
			s.weights = w
		}
	}
}

// WithSwipeAnalyzer sets the swipe analytics provider.
func WithSwipeAnalyzer(a SwipeAnalyzer) Option {
	return func(s *Scorer) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithClassifier sets the archetype classifier.
func WithClassifier(c *archetype.Classifier) Option {
	return func(s *Scorer) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithClock sets the time source used for recency windows.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.log = l.Named("scoring")
		}
	}
}

// Scorer computes pairwise compatibility. It holds no per-call state and is
// safe for concurrent use.
type Scorer struct {
	tables     *refdata.Tables
	weights    Weights
	analyzer   SwipeAnalyzer
	classifier *archetype.Classifier
	now        func() time.Time
	log        logger.Logger
}

// New creates a Scorer over the given reference tables.
func New(tables *refdata.Tables, opts ...Option) *Scorer {
	if tables == nil {
		tables = refdata.Default()
	}
	s := &Scorer{
		tables:   tables,
		weights:  DefaultWeights(),
		analyzer: LikedSwipeAnalyzer{},
		now:      time.Now,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.classifier == nil {
		s.classifier = archetype.New(tables, archetype.WithLogger(s.log))
	}
	return s
}

// Weights returns the active weight table.
func (s *Scorer) Weights() Weights { return s.weights }

// Contribution is the points one factor added to a score.
type Contribution struct {
	Factor string  `json:"factor"`
	Points float64 `json:"points"`
}

// Evidence lists the items both profiles share, in the first profile's order.
type Evidence struct {
	Services  []string `json:"services,omitempty"`
	Watched   []string `json:"watched,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	Favorites []string `json:"favorites,omitempty"`
	Likes     []string `json:"likes,omitempty"`
	Watchlist []string `json:"watchlist,omitempty"`
	Snacks    []string `json:"snacks,omitempty"`
}

// SubScores are 0-100 figures carried on a Match for transparency.
type SubScores struct {
	Quiz          float64 `json:"quiz"`
	Snack         float64 `json:"snack"`
	Debate        float64 `json:"debate"`
	EmotionalTone float64 `json:"emotionalTone"`
}

// Result is the outcome of scoring a pair.
type Result struct {
	Score       float64        `json:"score"`
	Breakdown   []Contribution `json:"breakdown"`
	Evidence    Evidence       `json:"evidence"`
	SubScores   SubScores      `json:"subScores"`
	ArchetypeA  string         `json:"archetypeA,omitempty"`
	ArchetypeB  string         `json:"archetypeB,omitempty"`
	Description string         `json:"description"`
}

// Points returns the contribution of the named factor, or 0 if it did not fire.
func (r Result) Points(factor string) float64 {
	for _, c := range r.Breakdown {
		if c.Factor == factor {
			return c.Points
		}
	}
	return 0
}

// SharedContent lists shared titles across favorites, likes, watchlist and
// watch history without repeats.
func (r Result) SharedContent() []string {
	seen := map[string]bool{}
	var out []string
	for _, list := range [][]string{r.Evidence.Favorites, r.Evidence.Likes, r.Evidence.Watchlist, r.Evidence.Watched} {
		for _, t := range list {
			k := strings.ToLower(t)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, t)
		}
	}
	return out
}

// pair is the per-call scoring context shared by all factors.
type pair struct {
	ctx    context.Context
	a, b   *model.Profile
	w      Weights
	tables *refdata.Tables
	now    time.Time
	fold   cases.Caser

	quizA, quizB *model.QuizAttempt
	archA, archB string

	analyzer   SwipeAnalyzer
	analyzed   bool
	swA, swB   SwipeAnalytics
	swErr      error
	swMissing  bool
	sharedQuiz string
	tone       string

	classifier *archetype.Classifier
	res        *Result
}

// swipes runs the analyzer once per pair. ErrNoSwipeData on either side
// marks the pair as missing data; any other error is returned.
func (p *pair) swipes() (SwipeAnalytics, SwipeAnalytics, bool, error) {
	if !p.analyzed {
		p.analyzed = true
		p.swErr = errAnalyzerAborted
		var errA, errB error
		p.swA, errA = p.analyzer.Analyze(p.a.Swipes)
		p.swB, errB = p.analyzer.Analyze(p.b.Swipes)
		p.swMissing = errors.Is(errA, ErrNoSwipeData) || errors.Is(errB, ErrNoSwipeData)
		p.swErr = errors.Join(realError(errA), realError(errB))
	}
	return p.swA, p.swB, p.swMissing, p.swErr
}

func realError(err error) error {
	if errors.Is(err, ErrNoSwipeData) {
		return nil
	}
	return err
}

// normalize folds case and collapses whitespace for title comparison.
func (p *pair) normalize(s string) string {
	return strings.Join(strings.Fields(p.fold.String(s)), " ")
}

// Score computes the compatibility of a and b. Factors that fail are logged
// and contribute nothing; Score never fails.
func (s *Scorer) Score(ctx context.Context, a, b *model.Profile) Result {
	start := time.Now()
	if a == nil {
		a = &model.Profile{}
	}
	if b == nil {
		b = &model.Profile{}
	}

	res := Result{}
	p := &pair{
		ctx:        ctx,
		a:          a,
		b:          b,
		w:          s.weights,
		tables:     s.tables,
		now:        s.now(),
		fold:       cases.Fold(),
		quizA:      a.LatestQuizAttempt(),
		quizB:      b.LatestQuizAttempt(),
		archA:      s.classifier.Resolve(ctx, a),
		archB:      s.classifier.Resolve(ctx, b),
		analyzer:   s.analyzer,
		classifier: s.classifier,
		res:        &res,
	}
	res.ArchetypeA, res.ArchetypeB = p.archA, p.archB

	total := s.weights.Base
	for _, f := range factors {
		pts := s.run(p, f)
		if pts > 0 {
			res.Breakdown = append(res.Breakdown, Contribution{Factor: f.name, Points: pts})
			total += pts
		}
	}
	res.Score = math.Min(total, s.weights.MaxScore)
	res.Description = describe(p)

	latency := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordPairScored(res.Score, latency)
	s.log.Debug(ctx, "pair scored",
		logger.String("user1_id", a.ID),
		logger.String("user2_id", b.ID),
		logger.Float64("score", res.Score),
		logger.Int("factors", len(res.Breakdown)))
	return res
}

// run evaluates one factor, absorbing errors and panics as a zero contribution.
func (s *Scorer) run(p *pair, f factor) (pts float64) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(p, f.name, fmt.Errorf("panic: %v", r))
			pts = 0
		}
	}()
	v, err := f.fn(p)
	if err != nil {
		s.fail(p, f.name, err)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func (s *Scorer) fail(p *pair, name string, err error) {
	metrics.RecordFactorFailure(name)
	s.log.Warn(p.ctx, "scoring factor failed",
		logger.String("factor", name),
		logger.String("user1_id", p.a.ID),
		logger.String("user2_id", p.b.ID),
		logger.Error(err))
}
