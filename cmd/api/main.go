package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/promptpulse/internal/api"
	"github.com/nikhilbhutani/promptpulse/internal/api/middleware"
	"github.com/nikhilbhutani/promptpulse/internal/config"
	"github.com/nikhilbhutani/promptpulse/internal/database"
	"github.com/nikhilbhutani/promptpulse/internal/logging"
	"github.com/nikhilbhutani/promptpulse/internal/prompt"
	"github.com/nikhilbhutani/promptpulse/internal/queue"
	"github.com/nikhilbhutani/promptpulse/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Init(cfg.Env, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is only dialed when the store, the cache or webhooks use it.
	var rdb *redis.Client
	if cfg.NeedsRedis() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			if cfg.Store.Backend == config.BackendRedis || cfg.Store.CacheTTL > 0 {
				logger.Error("redis unavailable", "addr", cfg.Redis.Addr, "error", err)
				os.Exit(1)
			}
			logger.Warn("redis unavailable, webhook notifications disabled", "addr", cfg.Redis.Addr, "error", err)
			rdb.Close()
			rdb = nil
		}
	}

	var db *pgxpool.Pool
	if cfg.Store.Backend == config.BackendPostgres {
		db, err = database.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("database unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.RunMigrations(ctx, db, database.Migrations); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	st, err := store.Open(cfg.Store, rdb, db, logger)
	if err != nil {
		logger.Error("failed to open prompt store", "error", err)
		os.Exit(1)
	}

	var pub prompt.Publisher
	if len(cfg.Webhook.URLs) > 0 && rdb != nil {
		qc := queue.NewClient(cfg.Redis)
		defer qc.Close()
		pub = qc
	}

	svc := prompt.NewService(st, pub, logger)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.Cleanup(ctx)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewRouter(st, svc, rdb, limiter, logger).Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting API server",
			"addr", cfg.Addr(),
			"store", cfg.Store.Backend,
			"data_dir", cfg.Store.DataDir,
			"webhooks", pub != nil,
			"routes", api.Routes(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
