// Package advice turns scored roster and waiver collections into the
// single suggested add/drop move and the ranked views behind it.
package advice

import (
	"math"
	"sort"

	"fastbreak/internal/domain/model"
	"fastbreak/internal/domain/types"
)

// aggregate returns the ranking value for a matched player. Unmatched
// and unscored players rank below every real score so they surface as
// drop candidates and never as add candidates. A genuine aggregate of
// -3.0 still beats this sentinel.
func aggregate(p model.MatchedPlayer) float64 {
	if !p.Matched() || !p.Row.Scored {
		return math.Inf(-1)
	}
	return p.Row.Aggregate
}

// RankRoster orders roster entries ascending by aggregate, weakest
// first. The sort is stable: ties and shared sentinels keep input
// order. Rank numbering starts at 1.
func RankRoster(roster []model.MatchedPlayer) []types.Entry {
	return rank(roster, func(a, b float64) bool { return a < b })
}

// RankWaiver orders waiver entries descending by aggregate, strongest
// first, with the same stability guarantees as RankRoster.
func RankWaiver(waiver []model.MatchedPlayer) []types.Entry {
	return rank(waiver, func(a, b float64) bool { return a > b })
}

func rank(players []model.MatchedPlayer, less func(a, b float64) bool) []types.Entry {
	type keyed struct {
		entry types.Entry
		agg   float64
	}
	rows := make([]keyed, len(players))
	for i, p := range players {
		e := types.Entry{Player: p.Name, Scored: p.Matched() && p.Row.Scored}
		if e.Scored {
			e.Score = p.Row.Aggregate
		}
		rows[i] = keyed{entry: e, agg: aggregate(p)}
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i].agg, rows[j].agg) })

	out := make([]types.Entry, len(rows))
	for i, r := range rows {
		r.entry.Rank = i + 1
		out[i] = r.entry
	}
	return out
}

// Select picks the single best swap: drop the roster entry with the
// minimum aggregate, add the waiver entry with the maximum aggregate,
// ties broken by first occurrence. It returns nil when either
// collection is empty, when the best add carries no projection data,
// or when the projected gain is not strictly positive. Inputs are
// never mutated.
func Select(roster, waiver []model.MatchedPlayer) *model.Recommendation {
	if len(roster) == 0 || len(waiver) == 0 {
		return nil
	}

	drop := roster[0]
	for _, p := range roster[1:] {
		if aggregate(p) < aggregate(drop) {
			drop = p
		}
	}
	add := waiver[0]
	for _, p := range waiver[1:] {
		if aggregate(p) > aggregate(add) {
			add = p
		}
	}

	// A player without data is never worth adding, whatever the drop
	// candidate looks like.
	addAgg := aggregate(add)
	if math.IsInf(addAgg, -1) {
		return nil
	}

	dropAgg := aggregate(drop)
	gain := addAgg - dropAgg
	if gain <= 0 {
		return nil
	}

	rec := &model.Recommendation{
		Drop:       drop.Name,
		Add:        add.Name,
		AddScore:   addAgg,
		Gain:       gain,
		DropScored: !math.IsInf(dropAgg, -1),
	}
	if rec.DropScored {
		rec.DropScore = dropAgg
	}
	return rec
}
