// Package espn fetches private fantasy-basketball league data using the
// espn_s2 and SWID cookies. The fetch is best effort: the advisor works
// from spreadsheet data alone, and league data only fills gaps (e.g. a
// roster list when the sheet tab is empty).
package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://fantasy.espn.com/apis/v3/games/fba"

// Client fetches league JSON for one season/league pair.
type Client struct {
	httpClient *http.Client
	baseURL    string
	leagueID   int
	season     int
	espnS2     string
	swid       string
	userAgent  string
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (tests use this).
func WithHTTPClient(c *http.Client) Option {
	return func(e *Client) {
		if c != nil {
			e.httpClient = c
		}
	}
}

// WithBaseURL overrides the API base URL (tests use this).
func WithBaseURL(u string) Option {
	return func(e *Client) {
		if u != "" {
			e.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithCookies sets the private-league auth cookies.
func WithCookies(espnS2, swid string) Option {
	return func(e *Client) {
		e.espnS2 = espnS2
		e.swid = swid
	}
}

// NewClient creates a league client.
func NewClient(leagueID, season int, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		leagueID:   leagueID,
		season:     season,
		userAgent:  "fastbreak/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether both auth cookies are present. Without
// them the fetch is skipped entirely rather than attempted and denied.
func (c *Client) Configured() bool {
	return c.espnS2 != "" && c.swid != ""
}

// TeamRoster holds the player names rostered by one league team.
type TeamRoster struct {
	TeamID  int
	Name    string
	Players []string
}

// League is the subset of league state the advisor consumes.
type League struct {
	LeagueID int
	Season   int
	Teams    []TeamRoster
}

// Roster returns the player names for a team id, or nil when the team
// is not in the payload.
func (l *League) Roster(teamID int) []string {
	for _, t := range l.Teams {
		if t.TeamID == teamID {
			return t.Players
		}
	}
	return nil
}

// FetchLeague pulls the league with roster and team views. Callers
// treat any error as "league data unavailable"; nothing here is fatal
// to the advisory run.
func (c *Client) FetchLeague(ctx context.Context) (*League, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%d?view=mRoster&view=mTeam",
		c.baseURL, c.season, c.leagueID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchLeague, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.espnS2})
	req.AddCookie(&http.Cookie{Name: "SWID", Value: c.swid})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchLeague, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchLeague, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchLeague, resp.StatusCode)
	}

	return c.parseLeague(body), nil
}

// parseLeague walks the mRoster/mTeam payload without binding the full
// ESPN schema; only team ids, names and rostered player names matter.
func (c *Client) parseLeague(body []byte) *League {
	league := &League{LeagueID: c.leagueID, Season: c.season}
	for _, team := range gjson.GetBytes(body, "teams").Array() {
		tr := TeamRoster{
			TeamID: int(team.Get("id").Int()),
			Name:   strings.TrimSpace(team.Get("name").String()),
		}
		for _, entry := range team.Get("roster.entries").Array() {
			name := strings.TrimSpace(entry.Get("playerPoolEntry.player.fullName").String())
			if name != "" {
				tr.Players = append(tr.Players, name)
			}
		}
		league.Teams = append(league.Teams, tr)
	}
	return league
}
