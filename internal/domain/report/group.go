package report

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/quiz"
	"github.com/okian/reelmatch/pkg/logger"
	"github.com/okian/reelmatch/pkg/metrics"
)

const minGroupSize = 2

// Group reports on every pair of members who have completed the quiz. Fewer
// than two members, or fewer than two quiz-complete members, yields an
// unavailable report carrying an error message.
func (g *Generator) Group(ctx context.Context, profiles []model.Profile) model.GroupCompatibilityReport {
	rep := model.GroupCompatibilityReport{
		Users:                 make([]model.UserRef, len(profiles)),
		PairwiseCompatibility: []model.PairScore{},
		SharedArchetypes:      []model.SharedArchetype{},
	}
	for i := range profiles {
		rep.Users[i] = ref(&profiles[i])
	}
	metrics.RecordGroupSize(len(profiles))
	if len(profiles) < minGroupSize {
		rep.Error = "A group report needs at least two users."
		metrics.RecordReportUnavailable(KindGroup, "too_few_users")
		return rep
	}

	attempts := make([]*model.QuizAttempt, len(profiles))
	var missing []string
	for i := range profiles {
		attempts[i] = profiles[i].LatestQuizAttempt()
		if attempts[i] == nil {
			missing = append(missing, displayName(&profiles[i]))
		}
	}

	total := 0
	for i := range profiles {
		for j := i + 1; j < len(profiles); j++ {
			if attempts[i] == nil || attempts[j] == nil {
				continue
			}
			score := quiz.Compare(*attempts[i], *attempts[j]).Score
			rep.PairwiseCompatibility = append(rep.PairwiseCompatibility, model.PairScore{
				User1ID: profiles[i].ID,
				User2ID: profiles[j].ID,
				Score:   score,
			})
			total += score
		}
	}
	if len(rep.PairwiseCompatibility) == 0 {
		rep.Error = "At least two group members need to complete the compatibility quiz."
		metrics.RecordReportUnavailable(KindGroup, "missing_quiz")
		return rep
	}

	rep.Available = true
	rep.OverallCompatibility = int(math.Round(float64(total) / float64(len(rep.PairwiseCompatibility))))
	rep.SharedArchetypes = g.sharedArchetypes(profiles, attempts)
	rep.Summary = groupSummary(len(profiles), rep)
	rep.Recommendations = groupRecommendations(rep, missing)

	metrics.RecordReportGenerated(KindGroup)
	g.log.Debug(ctx, "group report generated",
		logger.Int("members", len(profiles)),
		logger.Int("pairs", len(rep.PairwiseCompatibility)),
		logger.Int("score", rep.OverallCompatibility),
		logger.Strings("missing_quiz", missing))
	return rep
}

// sharedArchetypes lists archetypes held by two or more members in catalog
// order.
func (g *Generator) sharedArchetypes(profiles []model.Profile, attempts []*model.QuizAttempt) []model.SharedArchetype {
	members := map[string][]string{}
	for i, a := range attempts {
		if a == nil {
			continue
		}
		for _, t := range a.Traits.ArchetypeTypes() {
			members[t] = append(members[t], profiles[i].ID)
		}
	}
	out := []model.SharedArchetype{}
	for _, a := range g.tables.QuizArchetypes() {
		if m := members[a.Type]; len(m) >= minGroupSize {
			out = append(out, model.SharedArchetype{Type: a.Type, Name: a.Name, Members: m})
		}
	}
	return out
}

func groupSummary(size int, rep model.GroupCompatibilityReport) string {
	s := fmt.Sprintf("Your group of %d is %d%% compatible across %d pairing(s).",
		size, rep.OverallCompatibility, len(rep.PairwiseCompatibility))
	if len(rep.SharedArchetypes) > 0 {
		names := make([]string, len(rep.SharedArchetypes))
		for i, a := range rep.SharedArchetypes {
			names[i] = a.Name
		}
		s += " Common viewing personalities: " + strings.Join(names, ", ") + "."
	}
	return s
}

func groupRecommendations(rep model.GroupCompatibilityReport, missing []string) []string {
	recs := []string{tierMessage(rep.OverallCompatibility)}
	if len(rep.SharedArchetypes) > 0 {
		recs = append(recs, fmt.Sprintf("Start your watch party with something for the %s crowd.", rep.SharedArchetypes[0].Name))
	} else {
		recs = append(recs, "Let each member nominate one title and vote on the shortlist.")
	}
	if len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("Invite %s to take the quiz for a complete picture.", strings.Join(missing, ", ")))
	}
	return recs
}
