package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/reelmatch/internal/adapters/http/api"
	service "github.com/okian/reelmatch/internal/app"
	"github.com/okian/reelmatch/internal/domain/ids"
	"github.com/okian/reelmatch/internal/domain/refdata"
	"github.com/okian/reelmatch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Fields  []struct {
		Field string `json:"field"`
		Tag   string `json:"tag"`
	} `json:"fields"`
}

func newMux(started bool) *http.ServeMux {
	svc := service.New(
		service.WithLogger(logger.Nop()),
		service.WithIDGenerator(ids.NewSequence("id")),
		service.WithClock(func() time.Time { return time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC) }),
		service.WithMaxRankLimit(10),
	)
	if started {
		if err := svc.Start(context.Background()); err != nil {
			panic(err)
		}
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(mux)
	return mux
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeBody(w *httptest.ResponseRecorder, v any) {
	So(json.Unmarshal(w.Body.Bytes(), v), ShouldBeNil)
}

const fightClubPair = `{
	"profile1": {"id": "a", "favoriteMovies": [{"id": 550, "title": "Fight Club"}]},
	"profile2": {"id": "b", "favoriteMovies": [{"id": 550, "title": "FIGHT CLUB"}]}
}`

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(true)

		Convey("Then the health endpoint serves metrics", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then the stats endpoint reports service state", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]any
			decodeBody(w, &stats)
			So(stats["started"], ShouldEqual, true)
			So(stats["maxRankLimit"], ShouldEqual, 10.0)
		})

		Convey("Then unknown paths are not found", func() {
			w := do(mux, http.MethodGet, "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then operation routes only accept POST", func() {
			w := do(mux, http.MethodGet, "/v1/pairs/score", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
		})
	})
}

func TestPairScore(t *testing.T) {
	Convey("Given a started API", t, func() {
		mux := newMux(true)

		Convey("When scoring two profiles sharing a favorite", func() {
			w := do(mux, http.MethodPost, "/v1/pairs/score", fightClubPair)

			Convey("Then the score and evidence are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Score         float64  `json:"score"`
					Description   string   `json:"description"`
					SharedContent []string `json:"sharedContent"`
				}
				decodeBody(w, &body)
				So(body.Score, ShouldEqual, 35)
				So(body.SharedContent, ShouldResemble, []string{"Fight Club"})
				So(body.Description, ShouldStartWith, "35% match")
			})
		})

		Convey("When the body is malformed", func() {
			w := do(mux, http.MethodPost, "/v1/pairs/score", `{"profile1":`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body errorBody
				decodeBody(w, &body)
				So(body.Code, ShouldEqual, api.CodeBadRequest)
			})
		})

		Convey("When genres arrive as plain strings", func() {
			w := do(mux, http.MethodPost, "/v1/pairs/score", `{
				"profile1": {"id": "a", "preferences": {"genres": ["Drama", "Comedy"]}},
				"profile2": {"id": "b", "preferences": {"genres": [{"id": 18, "name": "Drama"}]}}
			}`)

			Convey("Then both shapes are accepted", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})

	Convey("Given an API whose service is not started", t, func() {
		mux := newMux(false)

		Convey("When scoring", func() {
			w := do(mux, http.MethodPost, "/v1/pairs/score", fightClubPair)

			Convey("Then the service is unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				var body errorBody
				decodeBody(w, &body)
				So(body.Code, ShouldEqual, api.CodeUnavailable)
			})
		})
	})
}

func TestRankMatches(t *testing.T) {
	Convey("Given a started API", t, func() {
		mux := newMux(true)
		pool := `[
			{"id": "me", "favoriteMovies": [{"id": 1, "title": "Heat"}]},
			{"id": "c1", "favoriteMovies": [{"id": 1, "title": "Heat"}]},
			{"id": "c2"}
		]`

		Convey("When ranking a pool", func() {
			w := do(mux, http.MethodPost, "/v1/matches/rank",
				`{"requester": {"id": "me", "favoriteMovies": [{"id": 1, "title": "Heat"}]}, "pool": `+pool+`, "limit": 5}`)

			Convey("Then matches are ordered best first without the requester", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Matches []struct {
						ID         string  `json:"id"`
						User2ID    string  `json:"user2Id"`
						MatchScore float64 `json:"matchScore"`
					} `json:"matches"`
				}
				decodeBody(w, &body)
				So(len(body.Matches), ShouldEqual, 2)
				So(body.Matches[0].User2ID, ShouldEqual, "c1")
				So(body.Matches[0].MatchScore, ShouldEqual, 35)
				So(body.Matches[0].ID, ShouldEqual, "id-1")
				So(body.Matches[1].User2ID, ShouldEqual, "c2")
			})
		})

		Convey("When the filter is out of range", func() {
			w := do(mux, http.MethodPost, "/v1/matches/rank",
				`{"requester": {"id": "me"}, "pool": `+pool+`, "filters": {"minScore": 120}}`)

			Convey("Then it is rejected with field details", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body errorBody
				decodeBody(w, &body)
				So(body.Code, ShouldEqual, api.CodeInvalidFilter)
				So(len(body.Fields), ShouldEqual, 1)
				So(body.Fields[0].Tag, ShouldEqual, "lte")
			})
		})

		Convey("When the limit is above the cap", func() {
			w := do(mux, http.MethodPost, "/v1/matches/rank",
				`{"requester": {"id": "me"}, "pool": `+pool+`, "limit": 11}`)

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body errorBody
				decodeBody(w, &body)
				So(body.Code, ShouldEqual, api.CodeLimitExceeded)
			})
		})

		Convey("When the requester is missing", func() {
			w := do(mux, http.MethodPost, "/v1/matches/rank", `{"pool": []}`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestQuizAndClassify(t *testing.T) {
	Convey("Given a started API", t, func() {
		mux := newMux(true)

		Convey("When a quiz attempt is submitted", func() {
			w := do(mux, http.MethodPost, "/v1/quiz/attempts", `{
				"userId": "u1",
				"answers": [
					{"questionId": "q01", "selectedValue": "d"},
					{"questionId": "q02", "selectedValue": "d"},
					{"questionId": "nope", "selectedValue": "a"}
				]
			}`)

			Convey("Then the scored attempt is created", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				var body struct {
					ID             string             `json:"id"`
					CategoryScores map[string]float64 `json:"categoryScores"`
				}
				decodeBody(w, &body)
				So(body.ID, ShouldEqual, "id-1")
				So(body.CategoryScores[refdata.CategoryAdventure], ShouldEqual, 100)
			})
		})

		Convey("When the user is missing", func() {
			w := do(mux, http.MethodPost, "/v1/quiz/attempts", `{"answers": []}`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When classifying a heavy binger", func() {
			w := do(mux, http.MethodPost, "/v1/archetypes/classify",
				`{"profile": {"id": "a", "preferences": {"bingeCount": 8}}}`)

			Convey("Then the marathon viewer is primary", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Primary string         `json:"primary"`
					Scores  map[string]int `json:"scores"`
				}
				decodeBody(w, &body)
				So(body.Primary, ShouldEqual, refdata.MarathonViewer)
				So(len(body.Scores), ShouldEqual, 8)
			})
		})
	})
}

func TestReports(t *testing.T) {
	Convey("Given a started API", t, func() {
		mux := newMux(true)

		Convey("When a pair report is requested before either user took the quiz", func() {
			w := do(mux, http.MethodPost, "/v1/reports/pair",
				`{"profile1": {"id": "a", "name": "Ana"}, "profile2": {"id": "b", "name": "Ben"}}`)

			Convey("Then an unavailable report is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Available bool   `json:"available"`
					Message   string `json:"message"`
				}
				decodeBody(w, &body)
				So(body.Available, ShouldBeFalse)
				So(body.Message, ShouldNotBeEmpty)
			})
		})

		Convey("When a group report has a single member", func() {
			w := do(mux, http.MethodPost, "/v1/reports/group", `{"profiles": [{"id": "a"}]}`)

			Convey("Then the report carries an error", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Available bool   `json:"available"`
					Error     string `json:"error"`
				}
				decodeBody(w, &body)
				So(body.Available, ShouldBeFalse)
				So(body.Error, ShouldNotBeEmpty)
			})
		})
	})
}
