package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"trivia-engine/internal/domain"
)

// StateStore persists per-user trivia state as JSON under a single key and
// implements compare-and-swap saves with WATCH/MULTI, so two concurrent
// mutations for the same user cannot silently clobber each other.
type StateStore struct {
	client *redis.Client
}

func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

func (s *StateStore) Load(ctx context.Context, userID string) (domain.UserTriviaState, error) {
	raw, err := s.client.Get(ctx, stateKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewUserTriviaState(userID), nil
	}
	if err != nil {
		return domain.UserTriviaState{}, fmt.Errorf("load state: %w", err)
	}
	var st domain.UserTriviaState
	if err := json.Unmarshal(raw, &st); err != nil {
		return domain.UserTriviaState{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return st, nil
}

// Save writes the state only if the stored version still matches the one the
// caller loaded (a missing key counts as version zero). A lost race returns
// domain.ErrVersionConflict.
func (s *StateStore) Save(ctx context.Context, state domain.UserTriviaState) error {
	key := stateKey(state.UserID)

	txf := func(tx *redis.Tx) error {
		current := int64(0)
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("read current state: %w", err)
		default:
			var stored domain.UserTriviaState
			if err := json.Unmarshal(raw, &stored); err != nil {
				return fmt.Errorf("unmarshal current state: %w", err)
			}
			current = stored.Version
		}
		if current != state.Version {
			return domain.ErrVersionConflict
		}

		next := state
		next.Version++
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal state: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		return domain.ErrVersionConflict
	}
	return err
}

func stateKey(userID string) string {
	return "trivia:state:" + userID
}
