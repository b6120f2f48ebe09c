package memory

import (
	"context"
	"sync"

	"trivia-engine/internal/domain"
)

// Ledger is an in-memory append-only attempt log, mainly for tests and the
// no-database dev setup.
type Ledger struct {
	mu      sync.RWMutex
	records []domain.AnswerRecord
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(_ context.Context, record domain.AnswerRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

// Records returns a copy of the ledger for inspection.
func (l *Ledger) Records() []domain.AnswerRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.AnswerRecord, len(l.records))
	copy(out, l.records)
	return out
}
