package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ServeStamps records servedAt instants in Redis, keyed per user and
// ordinal. Stamps outlive the answer window by design: a delayed submission
// must still be judged late against the original servedAt, so the retention
// should be at least the lockout duration. A stamp that aged out reads as
// never served, which the engine rejects without consuming an attempt.
type ServeStamps struct {
	client    *redis.Client
	retention time.Duration
}

func NewServeStamps(client *redis.Client, retention time.Duration) *ServeStamps {
	return &ServeStamps{client: client, retention: retention}
}

func (s *ServeStamps) Stamp(ctx context.Context, userID string, ordinal int, at time.Time) error {
	return s.client.Set(ctx, serveKey(userID, ordinal), strconv.FormatInt(at.UnixNano(), 10), s.retention).Err()
}

func (s *ServeStamps) Served(ctx context.Context, userID string, ordinal int) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, serveKey(userID, ordinal)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("load serve stamp: %w", err)
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// corrupt value, treat as not served
		return time.Time{}, false, nil
	}
	return time.Unix(0, nanos), true, nil
}

func serveKey(userID string, ordinal int) string {
	return "trivia:serve:" + userID + ":" + strconv.Itoa(ordinal)
}
