package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"trivia-engine/internal/domain"
	"trivia-engine/internal/infra/memory"
)

func TestCachedCatalogFillsRedisOnce(t *testing.T) {
	ctx := context.Background()
	source := &countingSource{inner: mustStaticSource(t)}
	catalog := NewCachedCatalog(newTestClient(t), source, time.Minute)

	questions, err := catalog.Questions(ctx)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != domain.QuestionCount {
		t.Fatalf("expected %d questions, got %d", domain.QuestionCount, len(questions))
	}
	if source.calls != 1 {
		t.Fatalf("expected source hit once, got %d", source.calls)
	}

	// Second read is served from the hash.
	if _, err := catalog.Questions(ctx); err != nil {
		t.Fatalf("cached questions: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls %d", source.calls)
	}

	q, err := catalog.Question(ctx, 3)
	if err != nil {
		t.Fatalf("question: %v", err)
	}
	if q.Ordinal != 3 || len(q.Options) != domain.OptionCount {
		t.Fatalf("unexpected cached question %+v", q)
	}
}

func TestCachedCatalogOrdersByOrdinal(t *testing.T) {
	catalog := NewCachedCatalog(newTestClient(t), mustStaticSource(t), time.Minute)

	questions, err := catalog.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	for i, q := range questions {
		if q.Ordinal != i+1 {
			t.Fatalf("expected ordinal %d at position %d, got %d", i+1, i, q.Ordinal)
		}
	}
}

type countingSource struct {
	inner CatalogSource
	calls int
}

func (s *countingSource) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	s.calls++
	return s.inner.LoadQuestions(ctx)
}

func mustStaticSource(t *testing.T) *memory.StaticCatalogSource {
	t.Helper()
	questions := make([]domain.Question, domain.QuestionCount)
	for i := range questions {
		ordinal := i + 1
		questions[i] = domain.Question{
			ID:            fmt.Sprintf("q%02d", ordinal),
			Ordinal:       ordinal,
			Prompt:        fmt.Sprintf("Question %d", ordinal),
			Options:       []string{"a", "b", "c", "d"},
			CorrectOption: i % domain.OptionCount,
		}
	}
	source, err := memory.NewStaticCatalogSource(questions)
	if err != nil {
		t.Fatalf("static source: %v", err)
	}
	return source
}
