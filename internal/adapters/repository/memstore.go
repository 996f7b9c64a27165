package repository

import (
	"context"
	"sync"

	"fastbreak/internal/domain/match"
	"fastbreak/internal/domain/types"
)

// MemStore is an in-memory Store guarded by a read-write mutex. Writes
// happen once per advisory run; reads come from the HTTP surface.
type MemStore struct {
	mu    sync.RWMutex
	snap  Snapshot
	ready bool
}

// NewMemStore creates an empty snapshot store.
func NewMemStore(_ context.Context) *MemStore {
	return &MemStore{}
}

// SetSnapshot replaces the stored snapshot.
func (s *MemStore) SetSnapshot(_ context.Context, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.ready = true
}

// Latest returns the stored snapshot, or ErrNoSnapshot before the
// first run completes.
func (s *MemStore) Latest(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return Snapshot{}, ErrNoSnapshot
	}
	return s.snap, nil
}

// TopAdds returns up to n waiver entries, strongest first.
func (s *MemStore) TopAdds(_ context.Context, n int) ([]types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNoSnapshot
	}
	return headEntries(s.snap.WaiverRanked, n), nil
}

// DropCandidates returns up to n roster entries, weakest first.
func (s *MemStore) DropCandidates(_ context.Context, n int) ([]types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNoSnapshot
	}
	return headEntries(s.snap.RosterRanked, n), nil
}

// Rank looks a player up on either ranked list by normalized name key,
// roster first.
func (s *MemStore) Rank(_ context.Context, player string) (types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return types.Entry{}, ErrNoSnapshot
	}
	key := match.Key(player)
	for _, list := range [][]types.Entry{s.snap.RosterRanked, s.snap.WaiverRanked} {
		for _, e := range list {
			if match.Key(e.Player) == key {
				return e, nil
			}
		}
	}
	return types.Entry{}, ErrNotFound
}

// Count returns the number of players across both ranked lists.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snap.RosterRanked) + len(s.snap.WaiverRanked)
}

func headEntries(entries []types.Entry, n int) []types.Entry {
	if n > len(entries) {
		n = len(entries)
	}
	if n < 0 {
		n = 0
	}
	return append([]types.Entry(nil), entries[:n]...)
}
