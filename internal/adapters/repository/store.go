// Package repository defines the advisory snapshot store and errors.
//
// A snapshot is the full output of one advisory run: the report plus
// the ranked roster and waiver collections behind it. The store keeps
// only the latest snapshot; historical recommendations are deliberately
// not persisted.
package repository

import (
	"context"

	"fastbreak/internal/domain/types"
	"fastbreak/internal/report"
)

// Snapshot is the queryable output of one advisory run.
type Snapshot struct {
	Report       *report.Report `json:"report"`
	RosterRanked []types.Entry  `json:"roster_ranked"`
	WaiverRanked []types.Entry  `json:"waiver_ranked"`
}

// Store provides read/write access to the latest advisory snapshot.
type Store interface {
	// SetSnapshot replaces the stored snapshot.
	SetSnapshot(ctx context.Context, snap Snapshot)

	// Latest returns the stored snapshot.
	// Returns ErrNoSnapshot before the first run completes.
	Latest(ctx context.Context) (Snapshot, error)

	// TopAdds returns up to n waiver entries, strongest first.
	TopAdds(ctx context.Context, n int) ([]types.Entry, error)

	// DropCandidates returns up to n roster entries, weakest first.
	DropCandidates(ctx context.Context, n int) ([]types.Entry, error)

	// Rank returns the ranked entry for a player on either list.
	// Returns ErrNotFound for unknown players.
	Rank(ctx context.Context, player string) (types.Entry, error)

	// Count returns the number of players across both ranked lists.
	Count(ctx context.Context) int
}
