package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/arcadia-tracker/arcadia/internal/app"
	"github.com/arcadia-tracker/arcadia/internal/artists"
	"github.com/arcadia-tracker/arcadia/internal/auth"
	"github.com/arcadia-tracker/arcadia/internal/comments"
	"github.com/arcadia-tracker/arcadia/internal/observability"
	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/platform/cache"
	"github.com/arcadia-tracker/arcadia/internal/platform/clock"
	"github.com/arcadia-tracker/arcadia/internal/platform/db"
	"github.com/arcadia-tracker/arcadia/internal/users"
	"github.com/arcadia-tracker/arcadia/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	systemClock := clock.System()
	policy := ownership.NewPolicy(cfg.GracePeriod())
	editorOpts := []ownership.EditorOption{
		ownership.WithClock(systemClock),
		ownership.WithLogger(logger),
		ownership.WithRecorder(metrics),
	}

	directory := users.NewDirectory(users.NewRepository(pool), redisClient, cfg.DirectoryCacheTTL, logger)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL, systemClock)
	authHandler := auth.NewHandler(logger, auth.NewService(auth.NewRepository(pool), tokens))

	artistService := artists.NewService(artists.NewRepository(pool), directory, policy, editorOpts...)
	commentService := comments.NewService(comments.NewRepository(pool), directory, policy, editorOpts...)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    authHandler,
		AuthMiddleware: auth.Middleware{Tokens: tokens, Logger: logger},
		ArtistHandler:  artists.NewHandler(logger, artistService),
		CommentHandler: comments.NewHandler(logger, commentService),
		JobHandler:     jobs.NewHandler(inspector, logger),
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr),
			slog.Duration("grace_period", policy.GracePeriod()),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
