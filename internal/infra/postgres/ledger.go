package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-engine/internal/domain"
)

// Ledger appends attempt rows to the trivia_answers table. Rows are never
// updated or deleted; the table is the audit trail of every attempt.
type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

func (l *Ledger) Append(ctx context.Context, r domain.AnswerRecord) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO trivia_answers (id, user_id, ordinal, selected_option, correct, served_at, answered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.UserID, r.Ordinal, r.SelectedOption, r.Correct, r.ServedAt, r.AnsweredAt)
	if err != nil {
		return fmt.Errorf("append answer record: %w", err)
	}
	return nil
}
