package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-engine/internal/domain"
)

// CatalogSource loads the 24-question catalog from Postgres. Options are
// stored as a JSONB array of strings.
type CatalogSource struct {
	pool *pgxpool.Pool
}

func NewCatalogSource(pool *pgxpool.Pool) *CatalogSource {
	return &CatalogSource{pool: pool}
}

func (s *CatalogSource) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, ordinal, prompt, options, correct_option, fun_fact FROM trivia_questions ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var rawOptions []byte
		if err := rows.Scan(&q.ID, &q.Ordinal, &q.Prompt, &rawOptions, &q.CorrectOption, &q.FunFact); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options for question %d: %w", q.Ordinal, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	if err := domain.ValidateCatalog(questions); err != nil {
		return nil, err
	}
	return questions, nil
}
