// Package report assembles the daily advisory report from the scored
// collections and renders it for delivery.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"fastbreak/internal/domain/model"
	"fastbreak/internal/domain/types"
)

// CategoryTotal is the projected team total for one category.
type CategoryTotal struct {
	Category model.Category `json:"category"`
	Total    float64        `json:"total"`
}

// Suggestion is the report shape of a Recommendation. DropScore and
// Gain are pointers because a drop candidate without projection data
// has no meaningful score and an unbounded gain; JSON cannot carry
// infinities, so both render as absent instead.
type Suggestion struct {
	Add       string   `json:"add"`
	AddScore  float64  `json:"add_score"`
	Drop      string   `json:"drop"`
	DropScore *float64 `json:"drop_score,omitempty"`
	Gain      *float64 `json:"gain,omitempty"`
}

// Report is the full advisory output for one run.
type Report struct {
	RunID           string          `json:"run_id"`
	GeneratedAt     time.Time       `json:"generated_at"`
	ProjectionCount int             `json:"projection_count"`
	TeamTotals      []CategoryTotal `json:"team_totals"`
	Underperformers []types.Entry   `json:"underperformers"`
	TopTargets      []types.Entry   `json:"top_targets"`
	Suggestion      *Suggestion     `json:"suggestion,omitempty"`
	Warnings        []string        `json:"warnings,omitempty"`
}

// Builder shapes reports; the counts control how many underperformers
// and waiver targets the rendered report lists.
type Builder struct {
	categories     []model.Category
	dropCandidates int
	topAdds        int
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithCategories sets the category order for team totals.
func WithCategories(categories []model.Category) Option {
	return func(b *Builder) {
		if len(categories) > 0 {
			b.categories = append([]model.Category(nil), categories...)
		}
	}
}

// WithDropCandidates sets how many underperformers are listed.
func WithDropCandidates(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.dropCandidates = n
		}
	}
}

// WithTopAdds sets how many waiver targets are listed.
func WithTopAdds(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.topAdds = n
		}
	}
}

// NewBuilder creates a Builder with the usual report shape: bottom
// three roster players, top five waiver targets.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		categories:     model.DefaultCategories(),
		dropCandidates: 3,
		topAdds:        5,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Input carries everything one run produced.
type Input struct {
	ProjectionCount int
	Roster          []model.MatchedPlayer
	Waiver          []model.MatchedPlayer
	RosterRanked    []types.Entry
	WaiverRanked    []types.Entry
	Recommendation  *model.Recommendation
}

// Build assembles the report. Unmatched names become warnings so data
// quality problems are visible instead of masquerading as terrible
// players.
func (b *Builder) Build(in Input) *Report {
	r := &Report{
		RunID:           uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		ProjectionCount: in.ProjectionCount,
		TeamTotals:      b.teamTotals(in.Roster),
		Underperformers: head(in.RosterRanked, b.dropCandidates),
		TopTargets:      head(in.WaiverRanked, b.topAdds),
	}

	if rec := in.Recommendation; rec != nil {
		s := &Suggestion{Add: rec.Add, AddScore: rec.AddScore, Drop: rec.Drop}
		if rec.DropScored {
			s.DropScore = ptr(rec.DropScore)
		}
		if !math.IsInf(rec.Gain, 1) {
			s.Gain = ptr(rec.Gain)
		}
		r.Suggestion = s
	}

	for _, p := range in.Roster {
		if !p.Matched() {
			r.Warnings = append(r.Warnings, fmt.Sprintf("no projection found for roster player %q", p.Name))
		}
	}
	for _, p := range in.Waiver {
		if !p.Matched() {
			r.Warnings = append(r.Warnings, fmt.Sprintf("no projection found for waiver player %q", p.Name))
		}
	}
	return r
}

// teamTotals sums raw projected values per category over the matched
// roster rows. Absent values contribute nothing rather than zero-fill.
func (b *Builder) teamTotals(roster []model.MatchedPlayer) []CategoryTotal {
	totals := make([]CategoryTotal, len(b.categories))
	for i, cat := range b.categories {
		totals[i] = CategoryTotal{Category: cat}
		for _, p := range roster {
			if !p.Matched() {
				continue
			}
			if v, ok := p.Row.Value(cat); ok {
				totals[i].Total += v
			}
		}
	}
	return totals
}

func head(entries []types.Entry, n int) []types.Entry {
	if len(entries) < n {
		n = len(entries)
	}
	return append([]types.Entry(nil), entries[:n]...)
}

func ptr(v float64) *float64 { return &v }
