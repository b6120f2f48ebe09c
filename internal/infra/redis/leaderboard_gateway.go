package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	completionsKey = "trivia:leaderboard:completions"
	lockoutsPrefix = "trivia:lockouts:"
	eventsChannel  = "trivia:events"
)

// LeaderboardGateway notifies the external leaderboard collaborator through
// Redis: completions land in a sorted set scored by days-to-complete,
// lockouts bump a per-user counter, and both publish an event for any
// downstream ranking consumer. Calls are best effort; the engine logs and
// swallows failures.
type LeaderboardGateway struct {
	client *redis.Client
}

func NewLeaderboardGateway(client *redis.Client) *LeaderboardGateway {
	return &LeaderboardGateway{client: client}
}

type leaderboardEvent struct {
	Type           string     `json:"type"` // "locked" or "completed"
	UserID         string     `json:"userId"`
	Ordinal        int        `json:"ordinal,omitempty"`
	LockedUntil    *time.Time `json:"lockedUntil,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	DaysToComplete int        `json:"daysToComplete,omitempty"`
}

func (g *LeaderboardGateway) UserLocked(ctx context.Context, userID string, ordinal int, until time.Time) error {
	if err := g.client.Incr(ctx, lockoutsPrefix+userID).Err(); err != nil {
		return err
	}
	return g.publish(ctx, leaderboardEvent{Type: "locked", UserID: userID, Ordinal: ordinal, LockedUntil: &until})
}

func (g *LeaderboardGateway) UserCompleted(ctx context.Context, userID string, completedAt time.Time, daysToComplete int) error {
	if err := g.client.ZAdd(ctx, completionsKey, redis.Z{
		Score:  float64(daysToComplete),
		Member: userID,
	}).Err(); err != nil {
		return err
	}
	return g.publish(ctx, leaderboardEvent{Type: "completed", UserID: userID, CompletedAt: &completedAt, DaysToComplete: daysToComplete})
}

func (g *LeaderboardGateway) publish(ctx context.Context, event leaderboardEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.client.Publish(ctx, eventsChannel, data).Err()
}
