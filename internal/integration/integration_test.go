package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"trivia-engine/internal/app"
	"trivia-engine/internal/domain"
	pginfra "trivia-engine/internal/infra/postgres"
	pgmigrations "trivia-engine/internal/infra/postgres/migrations"
	redisinfra "trivia-engine/internal/infra/redis"
)

func TestTriviaEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	questions := seedCatalog(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	timing := app.DefaultTiming()
	service := app.NewTriviaService(
		redisinfra.NewCachedCatalog(redisClient, pginfra.NewCatalogSource(pool), 5*time.Minute),
		redisinfra.NewStateStore(redisClient),
		pginfra.NewLedger(pool),
		redisinfra.NewServeStamps(redisClient, timing.Lockout),
		redisinfra.NewLeaderboardGateway(redisClient),
		timing,
	)

	// wrong answer locks and bumps the lockout counter
	next, err := service.NextQuestion(ctx, "loser")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	wrong := (next.Question.CorrectOption + 1) % domain.OptionCount
	result, err := service.SubmitAnswer(ctx, "loser", next.Question.ID, wrong)
	if err != nil {
		t.Fatalf("submit wrong: %v", err)
	}
	if result.Correct || !result.Locked {
		t.Fatalf("expected lock, got %+v", result)
	}
	lockouts, err := redisClient.Get(ctx, "trivia:lockouts:loser").Int()
	if err != nil || lockouts != 1 {
		t.Fatalf("expected 1 recorded lockout, got %d (err %v)", lockouts, err)
	}

	// a second user runs the full happy path
	for i := 0; i < domain.QuestionCount; i++ {
		next, err := service.NextQuestion(ctx, "winner")
		if err != nil {
			t.Fatalf("next %d: %v", i+1, err)
		}
		if next.Question == nil || next.Question.Ordinal != i+1 {
			t.Fatalf("expected question %d, got %+v", i+1, next.Question)
		}
		result, err := service.SubmitAnswer(ctx, "winner", next.Question.ID, next.Question.CorrectOption)
		if err != nil {
			t.Fatalf("submit %d: %v", i+1, err)
		}
		if !result.Correct {
			t.Fatalf("expected correct answer for question %d", i+1)
		}
	}

	progress, err := service.Progress(ctx, "winner")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !progress.Complete || progress.CorrectCount != domain.QuestionCount {
		t.Fatalf("expected completion, got %+v", progress)
	}

	// completion landed on the leaderboard sorted set
	score, err := redisClient.ZScore(ctx, "trivia:leaderboard:completions", "winner").Result()
	if err != nil {
		t.Fatalf("zscore: %v", err)
	}
	if score < 1 {
		t.Fatalf("expected at least day 1 score, got %f", score)
	}

	// every attempt reached the ledger
	var attempts int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM trivia_answers WHERE user_id=$1`, "winner").Scan(&attempts); err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if attempts != domain.QuestionCount {
		t.Fatalf("expected %d ledger rows, got %d", domain.QuestionCount, attempts)
	}

	// answer key reflects the seeded catalog
	key, err := service.AnswerKey(ctx)
	if err != nil {
		t.Fatalf("answer key: %v", err)
	}
	if len(key) != len(questions) || key[0].ID != questions[0].ID {
		t.Fatalf("expected seeded catalog in answer key, got %d questions", len(key))
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "trivia",
			"POSTGRES_PASSWORD": "triviapass",
			"POSTGRES_DB":       "triviadb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("pg host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("pg port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://trivia:triviapass@%s:%s/triviadb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedCatalog(t *testing.T, ctx context.Context, dsn string) []domain.Question {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	questions := make([]domain.Question, domain.QuestionCount)
	for i := range questions {
		ordinal := i + 1
		questions[i] = domain.Question{
			ID:            fmt.Sprintf("q%02d", ordinal),
			Ordinal:       ordinal,
			Prompt:        fmt.Sprintf("Question %d", ordinal),
			Options:       []string{"a", "b", "c", "d"},
			CorrectOption: i % domain.OptionCount,
			FunFact:       fmt.Sprintf("Fact %d", ordinal),
		}
	}
	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			t.Fatalf("marshal options: %v", err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO trivia_questions (id, ordinal, prompt, options, correct_option, fun_fact)
			 VALUES (?, ?, ?, ?::jsonb, ?, ?)
			 ON CONFLICT (id) DO NOTHING`,
			q.ID, q.Ordinal, q.Prompt, string(options), q.CorrectOption, q.FunFact); err != nil {
			t.Fatalf("insert question %d: %v", q.Ordinal, err)
		}
	}
	return questions
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
