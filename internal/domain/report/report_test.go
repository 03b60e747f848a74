package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/refdata"
	"github.com/okian/reelmatch/internal/domain/report"
	. "github.com/smartystreets/goconvey/convey"
)

var completed = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func strengths(types ...string) []model.ArchetypeStrength {
	out := make([]model.ArchetypeStrength, len(types))
	for i, t := range types {
		out[i] = model.ArchetypeStrength{Type: t, Strength: 80}
	}
	return out
}

func alice() model.Profile {
	return model.Profile{ID: "a", Name: "Alice", QuizAttempts: []model.QuizAttempt{{
		ID:             "qa",
		CategoryScores: map[string]float64{refdata.CategoryAdventure: 90, refdata.CategoryComfort: 80, refdata.CategorySocial: 20},
		Answers:        []model.Answer{{QuestionID: "q01", Selected: "d", Points: 3}},
		Traits:         model.PersonalityTraits{Archetypes: strengths(refdata.ThrillSeeker, refdata.SocialScreener)},
		CompletedAt:    completed,
	}}}
}

func bob() model.Profile {
	return model.Profile{ID: "b", Name: "Bob", QuizAttempts: []model.QuizAttempt{
		{ID: "old", CompletedAt: completed.Add(-time.Hour)},
		{
			ID:             "qb",
			CategoryScores: map[string]float64{refdata.CategoryAdventure: 85, refdata.CategoryComfort: 30, refdata.CategorySocial: 90},
			Answers:        []model.Answer{{QuestionID: "q01", Selected: "d", Points: 3}},
			Traits: model.PersonalityTraits{Archetypes: strengths(
				refdata.ThrillSeeker, refdata.ComfortCurator, refdata.CultureExplorer)},
			CompletedAt: completed,
		},
	}}
}

func TestPairReport(t *testing.T) {
	Convey("Given two users with completed quizzes", t, func() {
		gen := report.New(refdata.Default())
		a, b := alice(), bob()
		rep := gen.Pair(context.Background(), &a, &b)

		Convey("Then the overall score mirrors quiz compatibility of the latest attempts", func() {
			So(rep.Available, ShouldBeTrue)
			So(rep.OverallScore, ShouldEqual, 61)
			So(rep.User1.Name, ShouldEqual, "Alice")
		})

		Convey("Then archetypes are split into shared, complementary and different", func() {
			So(rep.ArchetypeAnalysis.Shared, ShouldResemble, []string{refdata.ThrillSeeker})
			So(rep.ArchetypeAnalysis.Complementary, ShouldResemble, []model.ArchetypePair{
				{User1Archetype: refdata.SocialScreener, User2Archetype: refdata.CultureExplorer},
			})
			So(rep.ArchetypeAnalysis.Different, ShouldResemble, []model.ArchetypePair{
				{User1Archetype: refdata.SocialScreener, User2Archetype: refdata.ComfortCurator},
			})
		})

		Convey("Then the category breakdown is sorted best to worst with levels", func() {
			So(rep.CategoryBreakdown, ShouldHaveLength, 3)
			So(rep.CategoryBreakdown[0].Category, ShouldEqual, refdata.CategoryAdventure)
			So(rep.CategoryBreakdown[0].Level, ShouldEqual, report.LevelExcellent)
			So(rep.CategoryBreakdown[1].Level, ShouldEqual, report.LevelModerate)
			So(rep.CategoryBreakdown[2].Level, ShouldEqual, report.LevelChallenging)
		})

		Convey("Then strengths and challenges are ranked", func() {
			So(rep.Strengths, ShouldHaveLength, 3)
			So(rep.Strengths[0].Title, ShouldEqual, "Adventure")
			So(rep.Strengths[1].Score, ShouldEqual, 95)
			So(rep.Strengths[2].Title, ShouldEqual, "Social Screener meets Culture Explorer")
			So(rep.Challenges, ShouldHaveLength, 1)
			So(rep.Challenges[0].Category, ShouldEqual, refdata.CategorySocial)
			So(rep.Challenges[0].Suggestion, ShouldNotBeEmpty)
		})

		Convey("Then recommendations cover tier, strength and challenge", func() {
			So(rep.Recommendations, ShouldHaveLength, 3)
			So(rep.Recommendations[1], ShouldContainSubstring, "Adventure")
			So(rep.Recommendations[2], ShouldStartWith, "On Social viewing")
			So(rep.Summary, ShouldStartWith, "Alice and Bob are 61% compatible.")
		})
	})

	Convey("Given a user without a quiz attempt", t, func() {
		gen := report.New(nil)
		a := alice()
		c := model.Profile{ID: "c", Name: "Cara"}
		rep := gen.Pair(context.Background(), &a, &c)

		Convey("Then the report is unavailable with an explanation", func() {
			So(rep.Available, ShouldBeFalse)
			So(rep.Message, ShouldEqual, "Cara hasn't completed the compatibility quiz yet.")
			So(rep.Strengths, ShouldBeEmpty)
		})
	})
}

func TestLevel(t *testing.T) {
	Convey("Given compatibility values at tier edges", t, func() {
		So(report.Level(90), ShouldEqual, report.LevelExcellent)
		So(report.Level(75), ShouldEqual, report.LevelGreat)
		So(report.Level(60), ShouldEqual, report.LevelGood)
		So(report.Level(45), ShouldEqual, report.LevelModerate)
		So(report.Level(44.9), ShouldEqual, report.LevelChallenging)
	})
}

func TestGroupReport(t *testing.T) {
	Convey("Given a group generator", t, func() {
		gen := report.New(refdata.Default())
		ctx := context.Background()

		Convey("When only two of three users have quizzes", func() {
			group := []model.Profile{alice(), {ID: "c", Name: "Cara"}, bob()}
			rep := gen.Group(ctx, group)
			pair := gen.Pair(ctx, &group[0], &group[2])

			Convey("Then exactly one pairwise score is the overall score", func() {
				So(rep.Available, ShouldBeTrue)
				So(rep.Users, ShouldHaveLength, 3)
				So(rep.PairwiseCompatibility, ShouldResemble, []model.PairScore{{User1ID: "a", User2ID: "b", Score: pair.OverallScore}})
				So(rep.OverallCompatibility, ShouldEqual, pair.OverallScore)
			})

			Convey("Then archetypes held by two members are reported", func() {
				So(rep.SharedArchetypes, ShouldHaveLength, 1)
				So(rep.SharedArchetypes[0].Type, ShouldEqual, refdata.ThrillSeeker)
				So(rep.SharedArchetypes[0].Members, ShouldResemble, []string{"a", "b"})
				So(rep.Summary, ShouldContainSubstring, "Thrill Seeker")
				So(rep.Recommendations[len(rep.Recommendations)-1], ShouldContainSubstring, "Cara")
			})
		})

		Convey("When fewer than two users are given", func() {
			rep := gen.Group(ctx, []model.Profile{alice()})

			Convey("Then an error report is returned", func() {
				So(rep.Available, ShouldBeFalse)
				So(rep.Error, ShouldNotBeEmpty)
			})
		})

		Convey("When nobody has a quiz", func() {
			rep := gen.Group(ctx, []model.Profile{{ID: "x"}, {ID: "y"}})

			Convey("Then the report explains the missing quizzes", func() {
				So(rep.Available, ShouldBeFalse)
				So(rep.Error, ShouldContainSubstring, "quiz")
				So(rep.PairwiseCompatibility, ShouldBeEmpty)
			})
		})
	})
}
