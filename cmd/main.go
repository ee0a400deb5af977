package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"adforge/internal/adapter/attribution"
	httpadapter "adforge/internal/adapter/http"
	"adforge/internal/adapter/insight"
	"adforge/internal/adapter/postgres"
	redisadapter "adforge/internal/adapter/redis"
	"adforge/internal/adapter/scraper"
	"adforge/internal/adapter/usecase"
	"adforge/internal/config"
	"adforge/internal/core/domain"
	"adforge/internal/db"
)

// main loads configuration, optionally runs migrations and seeding, wires
// the adapters around the decision engine and serves HTTP until a
// termination signal arrives.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(cfg.Log.Handler()).With(slog.String("env", cfg.Env))

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	creatives := postgres.NewCreativeRepository(pool)
	thresholds := postgres.NewThresholdRepository(pool, domain.Thresholds{
		Green:  cfg.Engine.DefaultGreen,
		Yellow: cfg.Engine.DefaultYellow,
	})

	if cfg.Psql.Seed {
		if n, err := creatives.Count(ctx); err != nil {
			logger.Error("seed check error", slog.Any("error", err))
		} else if n == 0 {
			if err := db.Seed(ctx, pool); err != nil {
				logger.Error("seed error", slog.Any("error", err))
			} else {
				logger.Info("demo pipeline seeded")
			}
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	notifier := redisadapter.NewNotifier(redisClient, logger, cfg.Redis.TTL)

	pipeline := usecase.NewPipeline(creatives, thresholds, cfg.Engine.OrderValue, cfg.Engine.MaxIterations)
	sync := usecase.NewSync(
		attribution.NewClient(cfg.Attribution.BaseURL, cfg.Attribution.APIKey, cfg.Attribution.ShopID, cfg.Attribution.Timeout),
		pipeline, creatives, notifier, logger,
	)
	analysis := usecase.NewAnalysis(
		insight.NewClient(cfg.Insight.BaseURL, cfg.Insight.APIKey, cfg.Insight.Model, cfg.Insight.MaxTokens, cfg.Insight.Timeout),
		pipeline, notifier, logger, cfg.Insight.Timeout,
	)
	scrape := usecase.NewScrape(
		scraper.NewClient(cfg.Scraper.BaseURL, cfg.Scraper.Token, cfg.Scraper.ActorID, cfg.Scraper.PollInterval, cfg.Scraper.MaxWait),
		pipeline, notifier, logger, cfg.Scraper.MaxComments,
	)

	handler := httpadapter.NewHandler(pipeline, sync, analysis, scrape, notifier, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctx, cancel = context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
