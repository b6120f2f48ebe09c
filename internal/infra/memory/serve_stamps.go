package memory

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ServeStamps keeps servedAt instants in process memory.
type ServeStamps struct {
	mu     sync.RWMutex
	stamps map[string]time.Time
}

func NewServeStamps() *ServeStamps {
	return &ServeStamps{stamps: make(map[string]time.Time)}
}

func (s *ServeStamps) Stamp(_ context.Context, userID string, ordinal int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamps[stampKey(userID, ordinal)] = at
	return nil
}

func (s *ServeStamps) Served(_ context.Context, userID string, ordinal int) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.stamps[stampKey(userID, ordinal)]
	return at, ok, nil
}

func stampKey(userID string, ordinal int) string {
	return fmt.Sprintf("%s:%d", userID, ordinal)
}
