// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New(...) to build a Config with defaults, Load(ctx) to layer
//     file and environment overrides on top.
//   - Secrets (Slack token, ESPN cookies, Sheets API key) are plain fields
//     so they can arrive through the FASTBREAK_ env prefix; they are never
//     written back to disk.
//   - External errors must be wrapped via this package's error helpers.
package config

import "fastbreak/internal/domain/model"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address for serve mode, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RunIntervalMinutes sets how often serve mode recomputes the
	// advisory. One-shot mode ignores it.
	RunIntervalMinutes int `koanf:"run_interval_minutes"`

	// Categories lists the scoring categories in report order.
	Categories []string `koanf:"categories"`

	// ProjectionsPath points at the projections CSV.
	ProjectionsPath string `koanf:"projections_path"`

	// RosterFile and WaiverFile are optional local name lists used when
	// no spreadsheet is configured (one name per line).
	RosterFile string `koanf:"roster_file"`
	WaiverFile string `koanf:"waiver_file"`

	// Spreadsheet source: document id, API key and the two tab ranges.
	SheetID     string `koanf:"sheet_id"`
	SheetAPIKey string `koanf:"sheet_api_key"`
	RosterRange string `koanf:"roster_range"`
	WaiverRange string `koanf:"waiver_range"`

	// League fetch (best effort, private leagues need both cookies).
	LeagueID   int    `koanf:"league_id"`
	Season     int    `koanf:"season"`
	ESPNTeamID int    `koanf:"espn_team_id"`
	ESPNS2     string `koanf:"espn_s2"`
	ESPNSWID   string `koanf:"espn_swid"`

	// Slack delivery: either a bot token plus channel, or a webhook URL.
	SlackToken      string `koanf:"slack_token"`
	SlackChannel    string `koanf:"slack_channel"`
	SlackWebhookURL string `koanf:"slack_webhook_url"`

	// Report shape.
	TopAdds        int `koanf:"top_adds"`
	DropCandidates int `koanf:"drop_candidates"`

	// MaxRankingLimit caps GET /rankings?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// DryRun prints the report to stdout instead of posting it.
	DryRun bool `koanf:"dry_run"`
}

// New creates a Config populated with defaults. The defaults mirror the
// league this advisor was built for; everything is overridable.
func New() *Config {
	cats := model.DefaultCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		RunIntervalMinutes: 60,
		Categories:         names,
		ProjectionsPath:    "player_projections.csv",
		RosterRange:        "roster!A:Z",
		WaiverRange:        "waiver!A:Z",
		LeagueID:           285626,
		Season:             2025,
		SlackChannel:       "#all-nba-fantasy-bot",
		TopAdds:            5,
		DropCandidates:     3,
		MaxRankingLimit:    100,
	}
}

// CategoryList converts the configured category names to domain
// categories, preserving order.
func (c *Config) CategoryList() []model.Category {
	out := make([]model.Category, len(c.Categories))
	for i, name := range c.Categories {
		out[i] = model.Category(name)
	}
	return out
}
