// Package scoreboard persists fighter win counts across bouts. The
// simulation core only sees the Store port; the process wiring decides
// whether scores live in memory or in Postgres.
package scoreboard

import (
	"context"
	"sync"
)

// Store is the score persistence port.
type Store interface {
	// Wins returns the recorded win count for a fighter, zero if none.
	Wins(ctx context.Context, fighter string) (int, error)
	// SetWins overwrites the win count for a fighter.
	SetWins(ctx context.Context, fighter string, wins int) error
	// RecordWin increments the win count for a fighter.
	RecordWin(ctx context.Context, fighter string) error
	// Reset clears the recorded score for a fighter.
	Reset(ctx context.Context, fighter string) error
}

// MemoryStore is an in-process Store. Default wiring, also used in
// tests.
type MemoryStore struct {
	mu   sync.Mutex
	wins map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wins: make(map[string]int)}
}

func (s *MemoryStore) Wins(_ context.Context, fighter string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wins[fighter], nil
}

func (s *MemoryStore) SetWins(_ context.Context, fighter string, wins int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wins[fighter] = wins
	return nil
}

func (s *MemoryStore) RecordWin(_ context.Context, fighter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wins[fighter]++
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, fighter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wins, fighter)
	return nil
}
