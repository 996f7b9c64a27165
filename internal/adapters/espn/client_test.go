package espn_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"fastbreak/internal/adapters/espn"
)

const leaguePayload = `{
	"id": 285626,
	"teams": [
		{
			"id": 1,
			"name": "Full Court Press",
			"roster": {
				"entries": [
					{"playerPoolEntry": {"player": {"fullName": "Luka Doncic"}}},
					{"playerPoolEntry": {"player": {"fullName": "Rudy Gobert"}}}
				]
			}
		},
		{
			"id": 2,
			"name": "Bench Mob",
			"roster": {
				"entries": [
					{"playerPoolEntry": {"player": {"fullName": "Jayson Tatum"}}},
					{"playerPoolEntry": {"player": {"fullName": ""}}}
				]
			}
		}
	]
}`

func TestFetchLeague(t *testing.T) {
	Convey("Given a league endpoint", t, func() {
		ctx := context.Background()

		Convey("When cookies are configured and the fetch succeeds", func() {
			var gotCookies map[string]string
			var gotViews []string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCookies = map[string]string{}
				for _, c := range r.Cookies() {
					gotCookies[c.Name] = c.Value
				}
				gotViews = r.URL.Query()["view"]
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(leaguePayload))
			}))
			defer srv.Close()

			client := espn.NewClient(285626, 2025,
				espn.WithBaseURL(srv.URL),
				espn.WithCookies("s2-value", "{swid-value}"))

			league, err := client.FetchLeague(ctx)

			Convey("Then teams and rosters are extracted", func() {
				So(err, ShouldBeNil)
				So(league, ShouldNotBeNil)
				So(league.LeagueID, ShouldEqual, 285626)
				So(league.Season, ShouldEqual, 2025)
				So(league.Teams, ShouldHaveLength, 2)
				So(league.Teams[0].Name, ShouldEqual, "Full Court Press")
				So(league.Teams[0].Players, ShouldResemble, []string{"Luka Doncic", "Rudy Gobert"})
			})

			Convey("Then blank player names are dropped", func() {
				So(league.Teams[1].Players, ShouldResemble, []string{"Jayson Tatum"})
			})

			Convey("Then both auth cookies and both views ride the request", func() {
				So(gotCookies["espn_s2"], ShouldEqual, "s2-value")
				So(gotCookies["SWID"], ShouldEqual, "{swid-value}")
				So(gotViews, ShouldContain, "mRoster")
				So(gotViews, ShouldContain, "mTeam")
			})

			Convey("Then Roster resolves by team id", func() {
				So(league.Roster(2), ShouldResemble, []string{"Jayson Tatum"})
				So(league.Roster(99), ShouldBeNil)
			})
		})

		Convey("When cookies are missing", func() {
			client := espn.NewClient(285626, 2025)

			Convey("Then the client reports unconfigured and skips the fetch", func() {
				So(client.Configured(), ShouldBeFalse)
				league, err := client.FetchLeague(ctx)
				So(err, ShouldEqual, espn.ErrNotConfigured)
				So(league, ShouldBeNil)
			})
		})

		Convey("When the API denies access", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "denied", http.StatusUnauthorized)
			}))
			defer srv.Close()

			client := espn.NewClient(285626, 2025,
				espn.WithBaseURL(srv.URL),
				espn.WithCookies("stale", "{stale}"))

			league, err := client.FetchLeague(ctx)

			Convey("Then a fetch error comes back", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, espn.ErrFetchLeague)
				So(league, ShouldBeNil)
			})
		})
	})
}
