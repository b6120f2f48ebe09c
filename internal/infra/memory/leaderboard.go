package memory

import (
	"context"
	"log"
	"time"
)

// LeaderboardLog is a no-op leaderboard collaborator that only logs events,
// used when no gateway is configured.
type LeaderboardLog struct{}

func NewLeaderboardLog() *LeaderboardLog {
	return &LeaderboardLog{}
}

func (LeaderboardLog) UserLocked(_ context.Context, userID string, ordinal int, until time.Time) error {
	log.Printf("trivia: user %s locked on question %d until %s", userID, ordinal, until.Format(time.RFC3339))
	return nil
}

func (LeaderboardLog) UserCompleted(_ context.Context, userID string, completedAt time.Time, daysToComplete int) error {
	log.Printf("trivia: user %s completed the challenge at %s in %d day(s)", userID, completedAt.Format(time.RFC3339), daysToComplete)
	return nil
}
