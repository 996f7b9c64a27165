// Package match associates roster and waiver names with scored
// projection rows despite inconsistent name formatting across sources.
package match

import (
	"strings"

	"fastbreak/internal/domain/model"
)

// Key returns the normalized matching key for a player name:
// case-folded with leading and trailing whitespace removed.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Players resolves each name in players against the scored projection
// table. Resolution is exact on the normalized key first; failing that,
// a permissive fallback looks for the first projection name (in source
// order) containing the first whitespace-delimited token of the input.
// The fallback tolerates suffixes, nicknames and partial names, but it
// is not unique: ambiguous tokens ("chris") resolve to whichever
// projection row comes first in the source, not to any ranking. A name
// that matches neither way maps to a nil row and must be treated as
// unscored downstream.
//
// Neither input is mutated; output order follows players.
func Players(scored []model.ScoredRow, players []string) []model.MatchedPlayer {
	exact := make(map[string]*model.ScoredRow, len(scored))
	keys := make([]string, len(scored))
	for i := range scored {
		k := Key(scored[i].Name)
		keys[i] = k
		if _, dup := exact[k]; !dup {
			exact[k] = &scored[i]
		}
	}

	out := make([]model.MatchedPlayer, len(players))
	for i, name := range players {
		out[i] = model.MatchedPlayer{Name: name, Row: lookup(scored, exact, keys, name)}
	}
	return out
}

func lookup(scored []model.ScoredRow, exact map[string]*model.ScoredRow, keys []string, name string) *model.ScoredRow {
	k := Key(name)
	if row, ok := exact[k]; ok {
		return row
	}
	token := firstToken(k)
	if token == "" {
		return nil
	}
	for i := range scored {
		if strings.Contains(keys[i], token) {
			return &scored[i]
		}
	}
	return nil
}

// firstToken returns the first whitespace-delimited token of an already
// normalized key.
func firstToken(key string) string {
	fields := strings.Fields(key)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
