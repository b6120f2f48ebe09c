package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"trivia-engine/internal/app"
	"trivia-engine/internal/config"
	"trivia-engine/internal/domain"
	"trivia-engine/internal/infra/memory"
	pginfra "trivia-engine/internal/infra/postgres"
	redisinfra "trivia-engine/internal/infra/redis"
	transport "trivia-engine/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia engine server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	timing := app.Timing{
		ThinkTime: config.Duration(cfg.Trivia.ThinkTime, domain.DefaultThinkTime),
		Grace:     config.Duration(cfg.Trivia.Grace, domain.DefaultGrace),
		Lockout:   config.Duration(cfg.Trivia.Lockout, domain.DefaultLockout),
	}
	catalogTTL := config.Duration(cfg.Trivia.CatalogTTL, time.Hour)

	var source memory.CatalogSource
	if pool != nil {
		source = pginfra.NewCatalogSource(pool)
	} else {
		static, err := memory.NewStaticCatalogSource(sampleCatalog())
		if err != nil {
			return err
		}
		source = static
	}

	var catalog app.Catalog
	if redisClient != nil {
		catalog = redisinfra.NewCachedCatalog(redisClient, source, catalogTTL)
	} else {
		catalog = memory.NewCachedCatalog(source, catalogTTL)
	}

	var states app.StateStore
	var stamps app.ServeStamps
	var leaderboard app.LeaderboardNotifier
	if redisClient != nil {
		states = redisinfra.NewStateStore(redisClient)
		stamps = redisinfra.NewServeStamps(redisClient, timing.Lockout)
		leaderboard = redisinfra.NewLeaderboardGateway(redisClient)
	} else {
		states = memory.NewStateStore()
		stamps = memory.NewServeStamps()
		leaderboard = memory.NewLeaderboardLog()
	}

	var ledger app.AnswerLedger
	if pool != nil {
		ledger = pginfra.NewLedger(pool)
	} else {
		ledger = memory.NewLedger()
	}

	service := app.NewTriviaService(catalog, states, ledger, stamps, leaderboard, timing)
	handler := transport.NewHandler(service)
	stream := transport.NewProgressStream(service, 5*time.Second)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("/trivia/ws", stream.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia engine on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
