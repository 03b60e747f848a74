// Package quiz turns raw quiz answers into normalized category scores and
// personality traits, and compares two scored attempts.
package quiz

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/okian/reelmatch/internal/domain/ids"
	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/refdata"
	"github.com/okian/reelmatch/pkg/logger"
	"github.com/okian/reelmatch/pkg/metrics"
)

// Scoring constants.
const (
	maxCategoryScore   = 100.0
	archetypeThreshold = 65.0
	maxArchetypes      = 3
	maxDominantTraits  = 5

	highTraitLevel     = 75.0
	moderateTraitLevel = 45.0

	neutralScore = 50.0

	categoryWeight  = 0.4
	archetypeWeight = 0.3
	agreementWeight = 0.3
)

// Trait levels.
const (
	LevelHigh     = "high"
	LevelModerate = "moderate"
	LevelLow      = "low"
)

// Engine scores quiz completions against a question bank.
type Engine struct {
	tables *refdata.Tables
	ids    ids.Generator
	now    func() time.Time
	log    logger.Logger
}

// New creates an Engine over the given reference tables.
func New(tables *refdata.Tables, opts ...Option) *Engine {
	if tables == nil {
		tables = refdata.Default()
	}
	e := &Engine{
		tables: tables,
		ids:    ids.UUID{},
		now:    time.Now,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process scores a raw answer set into a QuizAttempt. Answers that reference
// an unknown question or option are dropped. When a question is answered more
// than once the last answer wins.
func (e *Engine) Process(ctx context.Context, userID string, answers []model.AnswerInput) (model.QuizAttempt, error) {
	if strings.TrimSpace(userID) == "" {
		return model.QuizAttempt{}, ErrMissingUserID
	}

	resolved, dropped := e.resolve(answers)
	scores := e.categoryScores(resolved)

	attempt := model.QuizAttempt{
		ID:             e.ids.NewID(),
		UserID:         userID,
		Answers:        resolved,
		CategoryScores: scores,
		Traits:         Traits(e.tables, scores),
		CompletedAt:    e.now(),
	}

	metrics.RecordQuizAttempt(dropped)
	if dropped > 0 {
		e.log.Debug(ctx, "dropped unknown quiz answers",
			logger.String("user_id", userID), logger.Int("dropped", dropped))
	}
	return attempt, nil
}

func (e *Engine) resolve(answers []model.AnswerInput) ([]model.Answer, int) {
	out := make([]model.Answer, 0, len(answers))
	pos := make(map[string]int, len(answers))
	dropped := 0
	for _, in := range answers {
		q, ok := e.tables.Question(in.QuestionID)
		if !ok {
			dropped++
			continue
		}
		opt, ok := q.Option(in.Value)
		if !ok {
			dropped++
			continue
		}
		a := model.Answer{QuestionID: q.ID, Selected: opt.Value, Points: opt.Points}
		if i, seen := pos[q.ID]; seen {
			out[i] = a
			continue
		}
		pos[q.ID] = len(out)
		out = append(out, a)
	}
	return out, dropped
}

func (e *Engine) categoryScores(answers []model.Answer) map[string]float64 {
	points := map[string]int{}
	maxPoints := map[string]int{}
	for _, a := range answers {
		q, _ := e.tables.Question(a.QuestionID)
		points[q.Category] += a.Points
		maxPoints[q.Category] += q.MaxPoints()
	}
	scores := make(map[string]float64, len(points))
	for cat, p := range points {
		if maxPoints[cat] == 0 {
			scores[cat] = 0
			continue
		}
		scores[cat] = clamp(maxCategoryScore*float64(p)/float64(maxPoints[cat]), 0, maxCategoryScore)
	}
	return scores
}

// Traits derives personality traits from category scores. An archetype's
// strength is the plain average of its indicator categories present in
// scores; it qualifies at 65 or above.
func Traits(tables *refdata.Tables, scores map[string]float64) model.PersonalityTraits {
	var archetypes []model.ArchetypeStrength
	for _, a := range tables.QuizArchetypes() {
		sum, n := 0.0, 0
		for _, cat := range a.IndicatorCategories {
			if s, ok := scores[cat]; ok {
				sum += s
				n++
			}
		}
		if n == 0 {
			continue
		}
		if avg := sum / float64(n); avg >= archetypeThreshold {
			archetypes = append(archetypes, model.ArchetypeStrength{Type: a.Type, Name: a.Name, Strength: avg})
		}
	}
	sort.SliceStable(archetypes, func(i, j int) bool {
		return archetypes[i].Strength > archetypes[j].Strength
	})
	if len(archetypes) > maxArchetypes {
		archetypes = archetypes[:maxArchetypes]
	}

	levels := make(map[string]string, len(scores))
	for cat, s := range scores {
		levels[cat] = level(s)
	}

	return model.PersonalityTraits{
		Archetypes:     archetypes,
		TraitLevels:    levels,
		DominantTraits: dominant(scores),
	}
}

func level(score float64) string {
	switch {
	case score >= highTraitLevel:
		return LevelHigh
	case score >= moderateTraitLevel:
		return LevelModerate
	default:
		return LevelLow
	}
}

// dominant returns the top categories by score; ties go to the
// alphabetically first category.
func dominant(scores map[string]float64) []string {
	cats := make([]string, 0, len(scores))
	for cat := range scores {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		if scores[cats[i]] != scores[cats[j]] {
			return scores[cats[i]] > scores[cats[j]]
		}
		return cats[i] < cats[j]
	})
	if len(cats) > maxDominantTraits {
		cats = cats[:maxDominantTraits]
	}
	return cats
}

// Compatibility is the result of comparing two attempts. Component values are
// on a 0-100 scale; Score is their weighted, rounded sum.
type Compatibility struct {
	Score     int     `json:"score"`
	Category  float64 `json:"category"`
	Archetype float64 `json:"archetype"`
	Agreement float64 `json:"agreement"`
}

// Compare computes the compatibility of two attempts.
func Compare(a, b model.QuizAttempt) Compatibility {
	c := Compatibility{
		Category:  CategorySimilarity(a.CategoryScores, b.CategoryScores),
		Archetype: archetypeSimilarity(a.Traits.ArchetypeTypes(), b.Traits.ArchetypeTypes()),
		Agreement: answerAgreement(a.Answers, b.Answers),
	}
	c.Score = int(math.Round(categoryWeight*c.Category + archetypeWeight*c.Archetype + agreementWeight*c.Agreement))
	return c
}

// CategorySimilarity averages 100-|a-b| over the union of categories. A
// category missing on one side counts as 50 there.
func CategorySimilarity(a, b map[string]float64) float64 {
	union := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		union[k] = struct{}{}
	}
	for k := range b {
		union[k] = struct{}{}
	}
	if len(union) == 0 {
		return neutralScore
	}
	total := 0.0
	for k := range union {
		total += maxCategoryScore - math.Abs(scoreOr(a, k)-scoreOr(b, k))
	}
	return total / float64(len(union))
}

func scoreOr(m map[string]float64, k string) float64 {
	if v, ok := m[k]; ok {
		return v
	}
	return neutralScore
}

func archetypeSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return neutralScore
	}
	union := map[string]bool{}
	for _, t := range a {
		union[t] = false
	}
	shared := 0
	for _, t := range b {
		if inA, ok := union[t]; ok {
			if !inA {
				shared++
				union[t] = true
			}
			continue
		}
		union[t] = false
	}
	return maxCategoryScore * float64(shared) / float64(len(union))
}

func answerAgreement(a, b []model.Answer) float64 {
	selected := make(map[string]string, len(a))
	for _, ans := range a {
		selected[ans.QuestionID] = ans.Selected
	}
	common, same := 0, 0
	for _, ans := range b {
		s, ok := selected[ans.QuestionID]
		if !ok {
			continue
		}
		common++
		if s == ans.Selected {
			same++
		}
	}
	if common == 0 {
		return 0
	}
	return maxCategoryScore * float64(same) / float64(common)
}

// Latest returns the most recently completed attempt, or nil. Exact ties go
// to the later attempt in the slice.
func Latest(attempts []model.QuizAttempt) *model.QuizAttempt {
	p := model.Profile{QuizAttempts: attempts}
	return p.LatestQuizAttempt()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// String renders a compatibility for logs.
func (c Compatibility) String() string {
	return fmt.Sprintf("%d (category %.0f, archetype %.0f, agreement %.0f)", c.Score, c.Category, c.Archetype, c.Agreement)
}
