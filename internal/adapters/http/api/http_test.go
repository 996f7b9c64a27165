package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"fastbreak/internal/adapters/http/api"
	"fastbreak/internal/adapters/repository"
	"fastbreak/internal/domain/types"
	"fastbreak/internal/report"
)

// fakeDeps backs the handler interfaces with canned data.
type fakeDeps struct {
	snap    repository.Snapshot
	snapErr error
	rankErr error
}

func (f *fakeDeps) Latest(context.Context) (repository.Snapshot, error) {
	return f.snap, f.snapErr
}

func (f *fakeDeps) TopAdds(_ context.Context, n int) ([]types.Entry, error) {
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	return headOf(f.snap.WaiverRanked, n), nil
}

func (f *fakeDeps) DropCandidates(_ context.Context, n int) ([]types.Entry, error) {
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	return headOf(f.snap.RosterRanked, n), nil
}

func (f *fakeDeps) Rank(_ context.Context, player string) (types.Entry, error) {
	if f.rankErr != nil {
		return types.Entry{}, f.rankErr
	}
	for _, e := range append(f.snap.RosterRanked, f.snap.WaiverRanked...) {
		if e.Player == player {
			return e, nil
		}
	}
	return types.Entry{}, repository.ErrNotFound
}

func headOf(entries []types.Entry, n int) []types.Entry {
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

type fakeStats struct{}

func (fakeStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"runs": 3, "trackedPlayers": 12}
}

func newTestMux(deps *fakeDeps) *http.ServeMux {
	mux := http.NewServeMux()
	srv := api.NewServer(deps, fakeStats{}, 10)
	srv.Register(context.Background(), mux)
	return mux
}

func populatedDeps() *fakeDeps {
	return &fakeDeps{
		snap: repository.Snapshot{
			Report: &report.Report{RunID: "run-1", ProjectionCount: 9},
			RosterRanked: []types.Entry{
				{Rank: 1, Player: "Weak Link", Score: -1.5, Scored: true},
				{Rank: 2, Player: "Mid Guy", Score: 0.2, Scored: true},
			},
			WaiverRanked: []types.Entry{
				{Rank: 1, Player: "Hot Hand", Score: 2.0, Scored: true},
			},
		},
	}
}

func TestReportEndpoint(t *testing.T) {
	Convey("Given the API over a populated store", t, func() {
		mux := newTestMux(populatedDeps())

		Convey("When GET /report", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

			Convey("Then the latest report comes back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var r report.Report
				So(json.Unmarshal(rec.Body.Bytes(), &r), ShouldBeNil)
				So(r.RunID, ShouldEqual, "run-1")
				So(r.ProjectionCount, ShouldEqual, 9)
			})
		})

		Convey("When POST /report", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report", nil))

			Convey("Then the method is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given the API before the first run", t, func() {
		mux := newTestMux(&fakeDeps{snapErr: repository.ErrNoSnapshot})

		Convey("When GET /report", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

			Convey("Then the API answers 503 while warming up", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(rec.Body.String(), ShouldContainSubstring, "no_snapshot")
			})
		})
	})
}

func TestRankingsEndpoint(t *testing.T) {
	Convey("Given the API over a populated store", t, func() {
		mux := newTestMux(populatedDeps())

		Convey("When GET /rankings with a valid limit", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rankings?limit=2", nil))

			Convey("Then both lists come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp struct {
					DropCandidates []types.Entry `json:"drop_candidates"`
					TopAdds        []types.Entry `json:"top_adds"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.DropCandidates, ShouldHaveLength, 2)
				So(resp.DropCandidates[0].Player, ShouldEqual, "Weak Link")
				So(resp.TopAdds, ShouldHaveLength, 1)
				So(resp.TopAdds[0].Player, ShouldEqual, "Hot Hand")
			})
		})

		Convey("When the limit is missing or malformed", func() {
			for _, target := range []string{"/rankings", "/rankings?limit=abc", "/rankings?limit=0"} {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

				Convey("Then "+target+" is a bad request", func() {
					So(rec.Code, ShouldEqual, http.StatusBadRequest)
				})
			}
		})

		Convey("When the limit exceeds the configured maximum", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rankings?limit=11", nil))

			Convey("Then the API refuses it", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "limit_exceeded")
			})
		})
	})
}

func TestRankEndpoint(t *testing.T) {
	Convey("Given the API over a populated store", t, func() {
		mux := newTestMux(populatedDeps())

		Convey("When GET /rank/{player} for a known player", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rank/Hot%20Hand", nil))

			Convey("Then the ranked entry comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var e types.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &e), ShouldBeNil)
				So(e.Player, ShouldEqual, "Hot Hand")
				So(e.Rank, ShouldEqual, 1)
			})
		})

		Convey("When the player is unknown", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rank/Nobody", nil))

			Convey("Then the API answers 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(rec.Body.String(), ShouldContainSubstring, "not_found")
			})
		})

		Convey("When the path parameter is empty", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rank/", nil))

			Convey("Then the API answers 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the store fails unexpectedly", func() {
			deps := populatedDeps()
			deps.rankErr = errors.New("store exploded")
			mux := newTestMux(deps)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rank/Hot%20Hand", nil))

			Convey("Then the API answers 500", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)
				So(rec.Body.String(), ShouldContainSubstring, "internal_error")
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the API", t, func() {
		mux := newTestMux(populatedDeps())

		Convey("When GET /stats", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then service statistics come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var stats map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["runs"], ShouldEqual, 3)
				So(stats["trackedPlayers"], ShouldEqual, 12)
			})
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given the API", t, func() {
		mux := newTestMux(populatedDeps())

		Convey("When GET /healthz", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then the metrics exposition answers", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "fastbreak_advisor")
			})
		})
	})
}
