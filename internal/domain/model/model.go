// Package model contains domain models passed between layers.
package model

// Category identifies one tracked statistical dimension.
// Percentage categories hold percent values (47.5), not fractions.
type Category string

// League scoring categories.
const (
	Points       Category = "PTS"
	Rebounds     Category = "REB"
	Assists      Category = "AST"
	Steals       Category = "STL"
	Blocks       Category = "BLK"
	ThreesMade   Category = "3PM"
	FieldGoalPct Category = "FG%"
	FreeThrowPct Category = "FT%"
)

// DefaultCategories returns the standard eight-category league setup.
// The active list is configurable; this is only the default.
func DefaultCategories() []Category {
	return []Category{Points, Rebounds, Assists, Steals, Blocks, ThreesMade, FieldGoalPct, FreeThrowPct}
}

// ProjectionRow is one player's projected stat line. A category absent
// from Stats means the source had no value for it, which is not the
// same as a value of zero.
type ProjectionRow struct {
	Name  string
	Stats map[Category]float64
}

// Value returns the projected value for a category and whether it was
// present in the source table.
func (r ProjectionRow) Value(c Category) (float64, bool) {
	v, ok := r.Stats[c]
	return v, ok
}

// ScoredRow is a ProjectionRow with per-category normalized scores and
// their sum. Scored is false when the row had no value in any active
// category; its Aggregate is then meaningless and must not be read as a
// real score of zero.
type ScoredRow struct {
	ProjectionRow
	Z         map[Category]float64
	Aggregate float64
	Scored    bool
}

// MatchedPlayer associates one roster or waiver name with its
// projection row. Row is nil when no projection matched the name; such
// players rank as dominated-worst but are reported as a data-quality
// condition, not as genuinely weak performers.
type MatchedPlayer struct {
	Name string
	Row  *ScoredRow
}

// Matched reports whether a projection row was found for the player.
func (m MatchedPlayer) Matched() bool { return m.Row != nil }

// Recommendation is the single proposed roster move: drop the weakest
// rostered player, add the strongest available one. Gain is the add
// aggregate minus the drop aggregate and is positive infinity when the
// drop candidate carried no projection data at all.
type Recommendation struct {
	Drop       string
	Add        string
	DropScore  float64
	DropScored bool
	AddScore   float64
	Gain       float64
}
