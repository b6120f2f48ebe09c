package memory

import (
	"context"
	"sync"

	"trivia-engine/internal/domain"
)

// StateStore is an in-memory implementation of app.StateStore with
// optimistic concurrency: Save only applies when the caller holds the
// current version.
type StateStore struct {
	mu     sync.RWMutex
	states map[string]domain.UserTriviaState
}

func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]domain.UserTriviaState)}
}

// Load returns the saved state, or a fresh default (version zero) when the
// user has no record. Loading never persists anything.
func (s *StateStore) Load(_ context.Context, userID string) (domain.UserTriviaState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.states[userID]; ok {
		return st, nil
	}
	return domain.NewUserTriviaState(userID), nil
}

// Save applies the state when its version matches the stored one (or zero
// for a first write), bumping the version. A mismatch returns
// domain.ErrVersionConflict without touching the record.
func (s *StateStore) Save(_ context.Context, state domain.UserTriviaState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.states[state.UserID]
	if ok {
		if current.Version != state.Version {
			return domain.ErrVersionConflict
		}
	} else if state.Version != 0 {
		return domain.ErrVersionConflict
	}
	state.Version++
	s.states[state.UserID] = state
	return nil
}
