package domain

import "time"

const (
	// QuestionCount is the fixed length of the trivia challenge.
	QuestionCount = 24
	// OptionCount is the number of choices every question carries.
	OptionCount = 4
	// TimeoutOption is the sentinel a client submits when its countdown
	// expired with no selection.
	TimeoutOption = -1
)

// Default timing for the challenge: think time plus a network grace period
// form the answer window. The server clock is the only authority.
const (
	DefaultThinkTime = 20 * time.Second
	DefaultGrace     = 5 * time.Second
	DefaultLockout   = 24 * time.Hour
)

// Question is one entry of the immutable 24-question catalog.
type Question struct {
	ID            string   `json:"id"`
	Ordinal       int      `json:"ordinal"` // 1..QuestionCount, fixed presentation order
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"` // exactly OptionCount entries
	CorrectOption int      `json:"correctOption"`
	FunFact       string   `json:"funFact,omitempty"`
}

// UserTriviaState is the per-user progress record. It is created lazily on
// first access and mutated only through compare-and-swap saves keyed by
// Version.
type UserTriviaState struct {
	UserID         string     `json:"userId"`
	CurrentOrdinal int        `json:"currentOrdinal"`
	CorrectCount   int        `json:"correctCount"`
	AttemptedCount int        `json:"attemptedCount"`
	LockedUntil    *time.Time `json:"lockedUntil,omitempty"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	Version        int64      `json:"version"` // zero until first persisted
}

// NewUserTriviaState returns the default state for a user with no saved
// progress.
func NewUserTriviaState(userID string) UserTriviaState {
	return UserTriviaState{UserID: userID, CurrentOrdinal: 1}
}

// Complete reports whether the user has answered every question correctly.
func (s UserTriviaState) Complete() bool {
	return s.CompletedAt != nil
}

// LockedAt reports whether the user is locked out at the given instant.
func (s UserTriviaState) LockedAt(now time.Time) bool {
	return s.LockedUntil != nil && now.Before(*s.LockedUntil)
}

// AnswerRecord is one row of the append-only attempt ledger. A question may
// accumulate several records across lockout cycles.
type AnswerRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Ordinal        int       `json:"ordinal"`
	SelectedOption int       `json:"selectedOption"` // TimeoutOption when none
	Correct        bool      `json:"correct"`
	ServedAt       time.Time `json:"servedAt"`
	AnsweredAt     time.Time `json:"answeredAt"`
}

// ProgressView is the read-only projection served to clients.
type ProgressView struct {
	CurrentOrdinal int        `json:"currentOrdinal"`
	QuestionCount  int        `json:"questionCount"`
	AttemptedCount int        `json:"attemptedCount"`
	CorrectCount   int        `json:"correctCount"`
	Locked         bool       `json:"locked"`
	LockedUntil    *time.Time `json:"lockedUntil,omitempty"`
	Complete       bool       `json:"complete"`
	DaysToComplete int        `json:"daysToComplete,omitempty"`
}

// NextQuestion is the serve-side result: either a question to answer or the
// lock/completion status explaining why none was served.
type NextQuestion struct {
	Question    *Question    `json:"question,omitempty"`
	Progress    ProgressView `json:"progress"`
	ServedAt    time.Time    `json:"servedAt,omitempty"`
	Locked      bool         `json:"locked"`
	LockedUntil *time.Time   `json:"lockedUntil,omitempty"`
	Complete    bool         `json:"complete"`
}

// SubmitResult summarizes the outcome of one answer submission.
type SubmitResult struct {
	Correct       bool         `json:"correct"`
	CorrectOption int          `json:"correctOption"`
	FunFact       string       `json:"funFact,omitempty"`
	Locked        bool         `json:"locked"`
	LockedUntil   *time.Time   `json:"lockedUntil,omitempty"`
	Complete      bool         `json:"complete"`
	Progress      ProgressView `json:"progress"`
}
