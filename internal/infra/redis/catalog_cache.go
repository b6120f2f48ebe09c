package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-engine/internal/domain"
)

// CatalogSource loads the question set from a backing store.
type CatalogSource interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// CachedCatalog caches the question catalog in a Redis hash (one field per
// ordinal, JSON value) and falls back to a source on cache miss:
// HSET trivia:catalog:questions {ordinal} {question JSON}
type CachedCatalog struct {
	client *redis.Client
	source CatalogSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCachedCatalog(client *redis.Client, source CatalogSource, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

const catalogKey = "trivia:catalog:questions"

func (c *CachedCatalog) Question(ctx context.Context, ordinal int) (domain.Question, error) {
	if ordinal < 1 || ordinal > domain.QuestionCount {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	questions, err := c.Questions(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	for _, q := range questions {
		if q.Ordinal == ordinal {
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

func (c *CachedCatalog) Questions(ctx context.Context) ([]domain.Question, error) {
	fields, err := c.client.HGetAll(ctx, catalogKey).Result()
	if err == nil && len(fields) == domain.QuestionCount {
		return decodeCatalog(fields)
	}

	result, err, _ := c.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		fields, err := c.client.HGetAll(ctx, catalogKey).Result()
		if err == nil && len(fields) == domain.QuestionCount {
			return decodeCatalog(fields)
		}

		questions, err := c.source.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateCatalog(questions); err != nil {
			return nil, err
		}

		pipe := c.client.Pipeline()
		for _, q := range questions {
			data, err := json.Marshal(q)
			if err != nil {
				return nil, fmt.Errorf("marshal question %d: %w", q.Ordinal, err)
			}
			pipe.HSet(ctx, catalogKey, strconv.Itoa(q.Ordinal), data)
		}
		if c.ttl > 0 {
			pipe.Expire(ctx, catalogKey, c.ttlWithJitter())
		}
		_, _ = pipe.Exec(ctx)

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func decodeCatalog(fields map[string]string) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(fields))
	for _, raw := range fields {
		var q domain.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, fmt.Errorf("unmarshal cached question: %w", err)
		}
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].Ordinal < questions[j].Ordinal })
	return questions, nil
}

func (c *CachedCatalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
