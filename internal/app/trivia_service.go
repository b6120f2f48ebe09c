package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"trivia-engine/internal/domain"
)

// Catalog exposes the immutable question set. Safe for concurrent reads.
type Catalog interface {
	Question(ctx context.Context, ordinal int) (domain.Question, error)
	Questions(ctx context.Context) ([]domain.Question, error)
}

// StateStore persists per-user trivia state. Load returns a fresh default
// state when none exists. Save is a compare-and-swap keyed by Version and
// returns domain.ErrVersionConflict on a lost race.
type StateStore interface {
	Load(ctx context.Context, userID string) (domain.UserTriviaState, error)
	Save(ctx context.Context, state domain.UserTriviaState) error
}

// AnswerLedger records every attempt. Rows are append-only.
type AnswerLedger interface {
	Append(ctx context.Context, record domain.AnswerRecord) error
}

// ServeStamps tracks the server-side servedAt instant per (user, ordinal).
// It is the deadline authority; client-reported timers are never trusted.
// Stamps are only ever overwritten by a fresh serve, so a delayed submission
// is always judged against the servedAt of the serve it answers.
type ServeStamps interface {
	Stamp(ctx context.Context, userID string, ordinal int, at time.Time) error
	Served(ctx context.Context, userID string, ordinal int) (time.Time, bool, error)
}

// LeaderboardNotifier is the external leaderboard collaborator. Calls are
// fire-and-forget: a failure is logged and never rolls back a transition.
type LeaderboardNotifier interface {
	UserLocked(ctx context.Context, userID string, ordinal int, until time.Time) error
	UserCompleted(ctx context.Context, userID string, completedAt time.Time, daysToComplete int) error
}

// Timing bundles the durations the engine enforces.
type Timing struct {
	ThinkTime time.Duration
	Grace     time.Duration
	Lockout   time.Duration
}

// DefaultTiming returns the production durations.
func DefaultTiming() Timing {
	return Timing{
		ThinkTime: domain.DefaultThinkTime,
		Grace:     domain.DefaultGrace,
		Lockout:   domain.DefaultLockout,
	}
}

// Window is the total duration an answer is accepted after a serve.
func (t Timing) Window() time.Duration {
	return t.ThinkTime + t.Grace
}

func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.ThinkTime > 0 {
		d.ThinkTime = t.ThinkTime
	}
	if t.Grace > 0 {
		d.Grace = t.Grace
	}
	if t.Lockout > 0 {
		d.Lockout = t.Lockout
	}
	return d
}

// saveRetries bounds the compare-and-swap retry loop. Exhaustion surfaces as
// a transient domain.ErrVersionConflict the client may retry.
const saveRetries = 3

// TriviaService is the engine core: it serves questions, resolves answers
// against the server-side deadline, and drives the per-user state machine
// (not started -> awaiting answer -> locked/complete).
type TriviaService struct {
	catalog     Catalog
	states      StateStore
	ledger      AnswerLedger
	stamps      ServeStamps
	leaderboard LeaderboardNotifier
	timing      Timing
	now         func() time.Time
}

func NewTriviaService(catalog Catalog, states StateStore, ledger AnswerLedger, stamps ServeStamps, leaderboard LeaderboardNotifier, timing Timing) *TriviaService {
	return NewTriviaServiceWithClock(catalog, states, ledger, stamps, leaderboard, timing, time.Now)
}

// NewTriviaServiceWithClock allows deterministic timestamps in tests.
func NewTriviaServiceWithClock(catalog Catalog, states StateStore, ledger AnswerLedger, stamps ServeStamps, leaderboard LeaderboardNotifier, timing Timing, now func() time.Time) *TriviaService {
	return &TriviaService{
		catalog:     catalog,
		states:      states,
		ledger:      ledger,
		stamps:      stamps,
		leaderboard: leaderboard,
		timing:      timing.withDefaults(),
		now:         now,
	}
}

// NextQuestion serves the question at the user's current ordinal, stamping a
// fresh servedAt. When the user is locked or complete it returns no question
// and the flags explaining why. An expired lock is cleared transparently and
// the same ordinal is re-served.
func (s *TriviaService) NextQuestion(ctx context.Context, userID string) (domain.NextQuestion, error) {
	for attempt := 0; attempt < saveRetries; attempt++ {
		st, err := s.states.Load(ctx, userID)
		if err != nil {
			return domain.NextQuestion{}, fmt.Errorf("load state: %w", err)
		}
		now := s.now()

		if st.Complete() {
			return domain.NextQuestion{Progress: s.project(st, now), Complete: true}, nil
		}
		if st.LockedAt(now) {
			return domain.NextQuestion{Progress: s.project(st, now), Locked: true, LockedUntil: st.LockedUntil}, nil
		}

		dirty := false
		if st.StartedAt.IsZero() {
			st.StartedAt = now
			dirty = true
		}
		if st.LockedUntil != nil {
			st.LockedUntil = nil
			dirty = true
		}
		if dirty {
			if err := s.states.Save(ctx, st); err != nil {
				if errors.Is(err, domain.ErrVersionConflict) {
					continue
				}
				return domain.NextQuestion{}, fmt.Errorf("save state: %w", err)
			}
		}

		q, err := s.catalog.Question(ctx, st.CurrentOrdinal)
		if err != nil {
			return domain.NextQuestion{}, fmt.Errorf("load question %d: %w", st.CurrentOrdinal, err)
		}
		if err := s.stamps.Stamp(ctx, userID, q.Ordinal, now); err != nil {
			return domain.NextQuestion{}, fmt.Errorf("stamp serve: %w", err)
		}
		return domain.NextQuestion{Question: &q, Progress: s.project(st, now), ServedAt: now}, nil
	}
	return domain.NextQuestion{}, fmt.Errorf("serve question: %w", domain.ErrVersionConflict)
}

// SubmitAnswer resolves one submission for the currently served question.
// selected may be domain.TimeoutOption to signal a client-detected timeout;
// any submission arriving after the window is treated the same way
// regardless of the option it carries. Wrong or late answers lock the user
// for the lockout duration without advancing the ordinal.
func (s *TriviaService) SubmitAnswer(ctx context.Context, userID, questionID string, selected int) (domain.SubmitResult, error) {
	if selected != domain.TimeoutOption && (selected < 0 || selected >= domain.OptionCount) {
		return domain.SubmitResult{}, domain.ErrInvalidOption
	}
	q, err := s.questionByID(ctx, questionID)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	for attempt := 0; attempt < saveRetries; attempt++ {
		st, err := s.states.Load(ctx, userID)
		if err != nil {
			return domain.SubmitResult{}, fmt.Errorf("load state: %w", err)
		}
		now := s.now()

		if st.Complete() || q.Ordinal < st.CurrentOrdinal {
			return domain.SubmitResult{}, domain.ErrAlreadyAnswered
		}
		if q.Ordinal != st.CurrentOrdinal {
			return domain.SubmitResult{}, domain.ErrQuestionMismatch
		}
		if st.LockedAt(now) {
			// The attempt for this serve was already consumed.
			return domain.SubmitResult{}, domain.ErrAlreadyAnswered
		}

		servedAt, ok, err := s.stamps.Served(ctx, userID, q.Ordinal)
		if err != nil {
			return domain.SubmitResult{}, fmt.Errorf("load serve stamp: %w", err)
		}
		if !ok {
			return domain.SubmitResult{}, domain.ErrNotServed
		}

		// An answeredAt before servedAt means skewed clocks; judged late
		// rather than trusting a possibly stale stamp.
		late := now.Before(servedAt) || now.Sub(servedAt) > s.timing.Window()
		correct := !late && selected == q.CorrectOption

		if st.StartedAt.IsZero() {
			st.StartedAt = servedAt
		}
		st.AttemptedCount++
		if correct {
			st.CorrectCount++
			if st.CurrentOrdinal == domain.QuestionCount {
				done := now
				st.CompletedAt = &done
			} else {
				st.CurrentOrdinal++
			}
		} else {
			until := now.Add(s.timing.Lockout)
			st.LockedUntil = &until
		}

		if err := s.states.Save(ctx, st); err != nil {
			if errors.Is(err, domain.ErrVersionConflict) {
				continue
			}
			return domain.SubmitResult{}, fmt.Errorf("save state: %w", err)
		}

		record := domain.AnswerRecord{
			ID:             uuid.NewString(),
			UserID:         userID,
			Ordinal:        q.Ordinal,
			SelectedOption: selected,
			Correct:        correct,
			ServedAt:       servedAt,
			AnsweredAt:     now,
		}
		if err := s.ledger.Append(ctx, record); err != nil {
			log.Printf("trivia: append answer record user=%s ordinal=%d: %v", userID, q.Ordinal, err)
		}
		s.notify(ctx, st)

		return domain.SubmitResult{
			Correct:       correct,
			CorrectOption: q.CorrectOption,
			FunFact:       q.FunFact,
			Locked:        st.LockedAt(now),
			LockedUntil:   st.LockedUntil,
			Complete:      st.Complete(),
			Progress:      s.project(st, now),
		}, nil
	}
	return domain.SubmitResult{}, fmt.Errorf("submit answer: %w", domain.ErrVersionConflict)
}

// Progress returns the read-only projection for a user. It never mutates
// state; a lock that expired but has not been cleared yet reads as unlocked.
func (s *TriviaService) Progress(ctx context.Context, userID string) (domain.ProgressView, error) {
	st, err := s.states.Load(ctx, userID)
	if err != nil {
		return domain.ProgressView{}, fmt.Errorf("load state: %w", err)
	}
	return s.project(st, s.now()), nil
}

// AnswerKey returns the full catalog ordered by ordinal with correct options
// and fun facts exposed. It bypasses session state entirely.
func (s *TriviaService) AnswerKey(ctx context.Context) ([]domain.Question, error) {
	questions, err := s.catalog.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	sorted := make([]domain.Question, len(questions))
	copy(sorted, questions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Ordinal < sorted[j].Ordinal })
	return sorted, nil
}

func (s *TriviaService) questionByID(ctx context.Context, questionID string) (domain.Question, error) {
	questions, err := s.catalog.Questions(ctx)
	if err != nil {
		return domain.Question{}, fmt.Errorf("load catalog: %w", err)
	}
	for _, q := range questions {
		if q.ID == questionID {
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

func (s *TriviaService) project(st domain.UserTriviaState, now time.Time) domain.ProgressView {
	view := domain.ProgressView{
		CurrentOrdinal: st.CurrentOrdinal,
		QuestionCount:  domain.QuestionCount,
		AttemptedCount: st.AttemptedCount,
		CorrectCount:   st.CorrectCount,
		Complete:       st.Complete(),
	}
	if st.LockedAt(now) {
		view.Locked = true
		view.LockedUntil = st.LockedUntil
	}
	if st.Complete() {
		view.DaysToComplete = daysBetween(st.StartedAt, *st.CompletedAt)
	}
	return view
}

func (s *TriviaService) notify(ctx context.Context, st domain.UserTriviaState) {
	if s.leaderboard == nil {
		return
	}
	switch {
	case st.Complete():
		days := daysBetween(st.StartedAt, *st.CompletedAt)
		if err := s.leaderboard.UserCompleted(ctx, st.UserID, *st.CompletedAt, days); err != nil {
			log.Printf("trivia: leaderboard completion notify user=%s: %v", st.UserID, err)
		}
	case st.LockedUntil != nil:
		if err := s.leaderboard.UserLocked(ctx, st.UserID, st.CurrentOrdinal, *st.LockedUntil); err != nil {
			log.Printf("trivia: leaderboard lock notify user=%s: %v", st.UserID, err)
		}
	}
}

// daysBetween counts calendar-style elapsed days, with the starting day as
// day one.
func daysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 1
	}
	return int(end.Sub(start).Hours()/24) + 1
}
