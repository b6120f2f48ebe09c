package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-engine/internal/domain"
)

// CatalogSource loads the question set from a backing store.
type CatalogSource interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// StaticCatalogSource serves a fixed, validated question set (dev/demo/tests).
type StaticCatalogSource struct {
	questions []domain.Question
}

func NewStaticCatalogSource(questions []domain.Question) (*StaticCatalogSource, error) {
	if err := domain.ValidateCatalog(questions); err != nil {
		return nil, err
	}
	return &StaticCatalogSource{questions: questions}, nil
}

func (s *StaticCatalogSource) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

// CachedCatalog caches the catalog with a TTL to avoid repeated source hits.
// The catalog is immutable per content version, so a generous TTL is safe.
type CachedCatalog struct {
	source CatalogSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	byOrdinal map[int]domain.Question
	questions []domain.Question
	expiresAt time.Time
}

func NewCachedCatalog(source CatalogSource, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CachedCatalog) Question(ctx context.Context, ordinal int) (domain.Question, error) {
	if ordinal < 1 || ordinal > domain.QuestionCount {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if _, err := c.Questions(ctx); err != nil {
		return domain.Question{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.byOrdinal[ordinal]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (c *CachedCatalog) Questions(ctx context.Context) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if c.questions != nil && c.expiresAt.After(now) {
		qs := c.questions
		c.mu.RUnlock()
		return qs, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.questions != nil && c.expiresAt.After(now) {
			qs := c.questions
			c.mu.RUnlock()
			return qs, nil
		}
		c.mu.RUnlock()

		questions, err := c.source.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateCatalog(questions); err != nil {
			return nil, err
		}

		byOrdinal := make(map[int]domain.Question, len(questions))
		for _, q := range questions {
			byOrdinal[q.Ordinal] = q
		}

		c.mu.Lock()
		c.questions = questions
		c.byOrdinal = byOrdinal
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *CachedCatalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
