// Package types contains common types used across the application.
package types

// Entry represents one row of a ranked player collection. Score is
// only meaningful when Scored is true; unmatched or unscored players
// carry Scored=false so callers can flag missing data instead of
// rendering a fake worst score.
type Entry struct {
	Rank   int     `json:"rank"`
	Player string  `json:"player"`
	Score  float64 `json:"score"`
	Scored bool    `json:"scored"`
}
