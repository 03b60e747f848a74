package filter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/reelmatch/internal/domain/filter"
	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/refdata"
	"github.com/smartystreets/goconvey/convey"
)

func radius(v float64) *float64 { return &v }
func intPtr(v int) *int         { return &v }

func TestValidate(t *testing.T) {
	convey.Convey("Given filter inputs", t, func() {
		convey.Convey("When the age range is inverted", func() {
			err := filter.Filters{AgeRange: &model.AgeRange{Min: 30, Max: 20}}.Validate()

			convey.Convey("Then validation fails with field details", func() {
				convey.So(errors.Is(err, filter.ErrInvalidFilter), convey.ShouldBeTrue)
				var verr *filter.ValidationError
				convey.So(errors.As(err, &verr), convey.ShouldBeTrue)
				convey.So(verr.Fields[0].Tag, convey.ShouldEqual, "gtefield")
				convey.So(verr.Fields[0].Field, convey.ShouldContainSubstring, "ageRange.max")
			})
		})

		convey.Convey("When the radius is negative", func() {
			err := filter.Filters{LocationRadius: radius(-1)}.Validate()

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, filter.ErrInvalidFilter), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the premium binge range is inverted", func() {
			err := filter.Filters{Premium: &filter.Premium{BingeRange: &filter.IntRange{Min: 5, Max: 1}}}.Validate()

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, filter.ErrInvalidFilter), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the filters are well formed", func() {
			err := filter.Filters{
				AgeRange:       &model.AgeRange{Min: 20, Max: 20},
				LocationRadius: radius(0),
				MinScore:       50,
			}.Validate()

			convey.Convey("Then validation passes", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestResolve(t *testing.T) {
	convey.Convey("Given a requester with preferences", t, func() {
		req := &model.Profile{Preferences: model.Preferences{
			AgeRange:         &model.AgeRange{Min: 25, Max: 35},
			LocationRadius:   radius(20),
			GenderPreference: []string{"female"},
		}}

		convey.Convey("When an override sets some fields", func() {
			f, err := filter.Resolve(req, &filter.Filters{AgeRange: &model.AgeRange{Min: 18, Max: 99}})

			convey.Convey("Then override fields win and the rest come from preferences", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(f.AgeRange.Min, convey.ShouldEqual, 18)
				convey.So(*f.LocationRadius, convey.ShouldEqual, 20)
				convey.So(f.GenderPreference, convey.ShouldResemble, []string{"female"})
			})
		})

		convey.Convey("When the requester's own preferences are malformed", func() {
			req.Preferences.AgeRange = &model.AgeRange{Min: 40, Max: 30}
			_, err := filter.Resolve(req, nil)

			convey.Convey("Then resolution fails", func() {
				convey.So(errors.Is(err, filter.ErrInvalidFilter), convey.ShouldBeTrue)
			})
		})
	})
}

func TestGates(t *testing.T) {
	convey.Convey("Given a filter pipeline", t, func() {
		p := filter.New(refdata.Default())
		ctx := context.Background()
		req := &model.Profile{ID: "req", Location: "Austin, TX"}
		check := func(c *model.Profile, f filter.Filters) string {
			rej, ok := p.Check(ctx, req, c, f)
			if ok {
				return ""
			}
			return rej.Gate
		}

		convey.Convey("Then the age range is inclusive", func() {
			f := filter.Filters{AgeRange: &model.AgeRange{Min: 25, Max: 30}}
			convey.So(check(&model.Profile{Age: 25}, f), convey.ShouldBeEmpty)
			convey.So(check(&model.Profile{Age: 30}, f), convey.ShouldBeEmpty)
			convey.So(check(&model.Profile{Age: 31}, f), convey.ShouldEqual, filter.GateAge)
		})

		convey.Convey("Then gender preferences honor any and unset genders", func() {
			convey.So(check(&model.Profile{Gender: "male"}, filter.Filters{GenderPreference: []string{"Any"}}), convey.ShouldBeEmpty)
			convey.So(check(&model.Profile{}, filter.Filters{GenderPreference: []string{"female"}}), convey.ShouldBeEmpty)
			convey.So(check(&model.Profile{Gender: "male"}, filter.Filters{GenderPreference: []string{"female"}}), convey.ShouldEqual, filter.GateGender)
			convey.So(check(&model.Profile{Orientation: "straight"}, filter.Filters{OrientationPreference: []string{"gay"}}), convey.ShouldEqual, filter.GateOrientation)
		})

		convey.Convey("Then a radius of 150 never filters by location", func() {
			f := filter.Filters{LocationRadius: radius(150)}
			convey.So(check(&model.Profile{Location: "Oslo, Norway"}, f), convey.ShouldBeEmpty)
			convey.So(check(&model.Profile{Location: "garbage"}, f), convey.ShouldBeEmpty)
		})

		convey.Convey("Then regional radii accept the same state", func() {
			f := filter.Filters{LocationRadius: radius(75)}
			convey.So(check(&model.Profile{Location: "Dallas, tx"}, f), convey.ShouldBeEmpty)
			convey.So(check(&model.Profile{Location: "Denver, CO"}, f), convey.ShouldEqual, filter.GateLocation)
		})

		convey.Convey("Then local radii require the same city", func() {
			f := filter.Filters{LocationRadius: radius(50)}
			convey.So(check(&model.Profile{Location: " austin , TX"}, f), convey.ShouldBeEmpty)
			convey.So(check(&model.Profile{Location: "Dallas, TX"}, f), convey.ShouldEqual, filter.GateLocation)
			convey.So(check(&model.Profile{}, f), convey.ShouldBeEmpty)
		})

		convey.Convey("Then an archetype preference excludes unassigned candidates", func() {
			f := filter.Filters{ArchetypePreference: []string{refdata.Critic}}
			convey.So(check(&model.Profile{Archetype: refdata.Critic}, f), convey.ShouldBeEmpty)
			convey.So(check(&model.Profile{}, f), convey.ShouldEqual, filter.GateArchetype)
			convey.So(check(&model.Profile{}, filter.Filters{ArchetypePreference: []string{"any"}}), convey.ShouldBeEmpty)
		})

		convey.Convey("Then premium filters apply only to premium requesters", func() {
			f := filter.Filters{Premium: &filter.Premium{GenreIDs: []int{878}}}
			cand := &model.Profile{Preferences: model.Preferences{Genres: model.GenreNames("Comedy")}}
			convey.So(check(cand, f), convey.ShouldBeEmpty)

			req.Premium = true
			convey.So(check(cand, f), convey.ShouldEqual, filter.GatePremiumGenres)
			cand.Preferences.Genres = model.GenreNames("Science Fiction")
			convey.So(check(cand, f), convey.ShouldBeEmpty)
		})

		convey.Convey("Then premium binge, service and decade gates apply in order", func() {
			req.Premium = true
			cand := &model.Profile{
				Preferences:    model.Preferences{BingeCount: intPtr(4)},
				Services:       []model.ServiceConnection{{Name: "Hulu"}},
				FavoriteMovies: []model.MovieRef{{ID: 1, ReleaseYear: 1994}},
			}
			convey.So(check(cand, filter.Filters{Premium: &filter.Premium{BingeRange: &filter.IntRange{Min: 5, Max: 9}}}), convey.ShouldEqual, filter.GatePremiumBinge)
			convey.So(check(cand, filter.Filters{Premium: &filter.Premium{Services: []string{"netflix"}}}), convey.ShouldEqual, filter.GatePremiumServices)
			convey.So(check(cand, filter.Filters{Premium: &filter.Premium{Services: []string{"HULU"}}}), convey.ShouldBeEmpty)
			convey.So(check(cand, filter.Filters{Premium: &filter.Premium{Decades: []int{2000}}}), convey.ShouldEqual, filter.GatePremiumDecades)
			convey.So(check(cand, filter.Filters{Premium: &filter.Premium{Decades: []int{1990}}}), convey.ShouldBeEmpty)
		})
	})
}
