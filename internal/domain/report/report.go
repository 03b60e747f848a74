// Package report turns quiz compatibility into qualitative pair and group
// reports: strengths, challenges, recommendations and a summary.
package report

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/quiz"
	"github.com/okian/reelmatch/internal/domain/refdata"
	"github.com/okian/reelmatch/pkg/logger"
	"github.com/okian/reelmatch/pkg/metrics"
)

// Report kinds for metrics.
const (
	KindPair  = "pair"
	KindGroup = "group"
)

// Caps and thresholds.
const (
	maxArchetypeEntries = 3
	maxStrengths        = 5
	maxChallenges       = 3

	strengthMin  = 75.0
	challengeMax = 50.0

	sharedArchetypeScore        = 95.0
	complementaryArchetypeScore = 85.0
)

// Category compatibility levels.
const (
	LevelExcellent   = "excellent"
	LevelGreat       = "great"
	LevelGood        = "good"
	LevelModerate    = "moderate"
	LevelChallenging = "challenging"
)

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l.Named("report")
		}
	}
}

// Generator builds compatibility reports.
type Generator struct {
	tables *refdata.Tables
	log    logger.Logger
}

// New creates a Generator over the given reference tables.
func New(tables *refdata.Tables, opts ...Option) *Generator {
	if tables == nil {
		tables = refdata.Default()
	}
	g := &Generator{tables: tables, log: logger.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func ref(p *model.Profile) model.UserRef {
	return model.UserRef{ID: p.ID, Name: p.Name}
}

func displayName(p *model.Profile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Level maps a 0-100 compatibility to its label.
func Level(score float64) string {
	switch {
	case score >= 90:
		return LevelExcellent
	case score >= 75:
		return LevelGreat
	case score >= 60:
		return LevelGood
	case score >= 45:
		return LevelModerate
	default:
		return LevelChallenging
	}
}

// Pair reports on two users' latest quiz attempts. When either user has not
// completed the quiz the report is unavailable and says why.
func (g *Generator) Pair(ctx context.Context, a, b *model.Profile) model.CompatibilityReport {
	rep := model.CompatibilityReport{User1: ref(a), User2: ref(b)}
	qa, qb := a.LatestQuizAttempt(), b.LatestQuizAttempt()
	if qa == nil || qb == nil {
		rep.Message = missingQuizMessage(a, b, qa == nil, qb == nil)
		metrics.RecordReportUnavailable(KindPair, "missing_quiz")
		g.log.Debug(ctx, "pair report unavailable",
			logger.String("user1_id", a.ID), logger.String("user2_id", b.ID))
		return rep
	}

	rep.Available = true
	rep.OverallScore = quiz.Compare(*qa, *qb).Score
	rep.ArchetypeAnalysis = g.archetypes(qa.Traits.ArchetypeTypes(), qb.Traits.ArchetypeTypes())
	rep.CategoryBreakdown = g.breakdown(qa.CategoryScores, qb.CategoryScores)
	rep.Strengths = g.strengths(rep.CategoryBreakdown, rep.ArchetypeAnalysis)
	rep.Challenges = g.challenges(rep.CategoryBreakdown)
	rep.Recommendations = pairRecommendations(rep)
	rep.Summary = pairSummary(displayName(a), displayName(b), rep)

	metrics.RecordReportGenerated(KindPair)
	g.log.Debug(ctx, "pair report generated",
		logger.String("user1_id", a.ID),
		logger.String("user2_id", b.ID),
		logger.Int("score", rep.OverallScore))
	return rep
}

func missingQuizMessage(a, b *model.Profile, missingA, missingB bool) string {
	switch {
	case missingA && missingB:
		return fmt.Sprintf("Neither %s nor %s has completed the compatibility quiz yet.", displayName(a), displayName(b))
	case missingA:
		return fmt.Sprintf("%s hasn't completed the compatibility quiz yet.", displayName(a))
	default:
		return fmt.Sprintf("%s hasn't completed the compatibility quiz yet.", displayName(b))
	}
}

func (g *Generator) archetypes(typesA, typesB []string) model.ArchetypeAnalysis {
	inB := map[string]bool{}
	for _, t := range typesB {
		inB[t] = true
	}
	shared := map[string]bool{}
	out := model.ArchetypeAnalysis{Shared: []string{}, Complementary: []model.ArchetypePair{}, Different: []model.ArchetypePair{}}
	for _, t := range typesA {
		if inB[t] && !shared[t] {
			shared[t] = true
			if len(out.Shared) < maxArchetypeEntries {
				out.Shared = append(out.Shared, t)
			}
		}
	}
	for _, x := range typesA {
		for _, y := range typesB {
			if x == y || shared[x] || shared[y] {
				continue
			}
			p := model.ArchetypePair{User1Archetype: x, User2Archetype: y}
			if g.tables.Complementary(x, y) {
				if len(out.Complementary) < maxArchetypeEntries {
					out.Complementary = append(out.Complementary, p)
				}
			} else if len(out.Different) < maxArchetypeEntries {
				out.Different = append(out.Different, p)
			}
		}
	}
	return out
}

func (g *Generator) breakdown(a, b map[string]float64) []model.CategoryCompatibility {
	cats := map[string]struct{}{}
	for k := range a {
		cats[k] = struct{}{}
	}
	for k := range b {
		cats[k] = struct{}{}
	}
	out := make([]model.CategoryCompatibility, 0, len(cats))
	for cat := range cats {
		sa, sb := scoreOrNeutral(a, cat), scoreOrNeutral(b, cat)
		compat := 100 - math.Abs(sa-sb)
		out = append(out, model.CategoryCompatibility{
			Category:      cat,
			Label:         g.tables.Category(cat).Label,
			User1Score:    sa,
			User2Score:    sb,
			Compatibility: compat,
			Level:         Level(compat),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Compatibility != out[j].Compatibility {
			return out[i].Compatibility > out[j].Compatibility
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func scoreOrNeutral(m map[string]float64, k string) float64 {
	if v, ok := m[k]; ok {
		return v
	}
	return 50
}

func (g *Generator) archetypeName(t string) string {
	if a, ok := g.tables.QuizArchetype(t); ok {
		return a.Name
	}
	return t
}

func (g *Generator) strengths(breakdown []model.CategoryCompatibility, arch model.ArchetypeAnalysis) []model.Strength {
	var out []model.Strength
	for _, c := range breakdown {
		if c.Compatibility >= strengthMin {
			out = append(out, model.Strength{
				Title:       c.Label,
				Description: g.tables.Category(c.Category).StrengthDescription,
				Score:       c.Compatibility,
			})
		}
	}
	for _, t := range arch.Shared {
		desc := "You share the same viewing personality."
		if a, ok := g.tables.QuizArchetype(t); ok {
			desc = "You're both " + a.Name + "s: " + a.Description
		}
		out = append(out, model.Strength{
			Title:       "Shared archetype: " + g.archetypeName(t),
			Description: desc,
			Score:       sharedArchetypeScore,
		})
	}
	for _, p := range arch.Complementary {
		out = append(out, model.Strength{
			Title: fmt.Sprintf("%s meets %s", g.archetypeName(p.User1Archetype), g.archetypeName(p.User2Archetype)),
			Description: "Your different viewing personalities balance each other and " +
				"widen what you'll discover together.",
			Score: complementaryArchetypeScore,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > maxStrengths {
		out = out[:maxStrengths]
	}
	return out
}

func (g *Generator) challenges(breakdown []model.CategoryCompatibility) []model.Challenge {
	var out []model.Challenge
	for i := len(breakdown) - 1; i >= 0 && len(out) < maxChallenges; i-- {
		c := breakdown[i]
		if c.Compatibility >= challengeMax {
			break
		}
		cat := g.tables.Category(c.Category)
		out = append(out, model.Challenge{
			Category:    c.Category,
			Title:       cat.Label,
			Description: cat.ChallengeDescription,
			Suggestion:  cat.ChallengeSuggestion,
			Score:       c.Compatibility,
		})
	}
	return out
}

// tierMessage is the general recommendation for an overall score.
func tierMessage(score int) string {
	switch {
	case score >= 80:
		return "You're a natural movie-night match. Take turns picking and you'll rarely go wrong."
	case score >= 60:
		return "You have solid common ground. Mix each other's favorites into a shared queue."
	case score >= 40:
		return "You overlap in places. Start with crowd-pleasers and branch out from what you both enjoy."
	default:
		return "Your tastes are very different, which makes for great discovery. Trade recommendations and keep an open mind."
	}
}

func pairRecommendations(rep model.CompatibilityReport) []string {
	recs := []string{tierMessage(rep.OverallScore)}
	if len(rep.Strengths) > 0 {
		recs = append(recs, fmt.Sprintf("Build on your strongest area, %s, when you can't decide what to watch.", rep.Strengths[0].Title))
	} else {
		recs = append(recs, "Take the time to learn what each of you loves before committing to a long series.")
	}
	if len(rep.Challenges) > 0 {
		c := rep.Challenges[0]
		recs = append(recs, fmt.Sprintf("On %s: %s", c.Title, c.Suggestion))
	}
	return recs
}

func pairSummary(nameA, nameB string, rep model.CompatibilityReport) string {
	s := fmt.Sprintf("%s and %s are %d%% compatible.", nameA, nameB, rep.OverallScore)
	if len(rep.CategoryBreakdown) > 0 {
		best := rep.CategoryBreakdown[0]
		s += fmt.Sprintf(" You line up best on %s (%s).", best.Label, best.Level)
	}
	if len(rep.ArchetypeAnalysis.Shared) > 0 {
		s += fmt.Sprintf(" You share %d viewing archetype(s).", len(rep.ArchetypeAnalysis.Shared))
	}
	if len(rep.Challenges) > 0 {
		s += fmt.Sprintf(" Expect some friction around %s.", rep.Challenges[0].Title)
	}
	return s
}
