package storage

import (
	"slices"
	"strings"
	"sync"

	"games-api/internal/model"
)

// MemoryStore implements GameStore with an in-process slice.
// A single lock guards every operation so indices stay contiguous under
// concurrent handlers.
type MemoryStore struct {
	mu    sync.RWMutex
	games []model.Game
}

// NewMemoryStore creates a store holding a copy of seed.
func NewMemoryStore(seed []model.Game) *MemoryStore {
	games := make([]model.Game, len(seed))
	copy(games, seed)
	return &MemoryStore{games: games}
}

func (s *MemoryStore) List() []model.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Game, len(s.games))
	copy(out, s.games)
	return out
}

func (s *MemoryStore) Filter(pattern string) ([]model.Game, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, ErrInvalidQuery
	}
	needle := strings.ToLower(pattern)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Game, 0)
	for _, g := range s.games {
		if strings.Contains(strings.ToLower(g.Genre), needle) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(index int) (model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkIndex(index); err != nil {
		return model.Game{}, err
	}
	return s.games[index], nil
}

func (s *MemoryStore) Append(game model.Game) (model.Game, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = append(s.games, game)
	return game, len(s.games) - 1
}

func (s *MemoryStore) Replace(index int, game model.Game) (model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return model.Game{}, err
	}
	s.games[index] = game
	return game, nil
}

func (s *MemoryStore) Delete(index int) (model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return model.Game{}, err
	}
	removed := s.games[index]
	s.games = slices.Delete(s.games, index, index+1)
	return removed, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// checkIndex must be called with s.mu held.
func (s *MemoryStore) checkIndex(index int) error {
	if index < 0 || index >= len(s.games) {
		return &IndexError{Index: index, Len: len(s.games)}
	}
	return nil
}
