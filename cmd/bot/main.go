package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"souschef/internal/config"
	"souschef/internal/dialogue"
	"souschef/internal/handler"
	"souschef/internal/httpapi"
	"souschef/internal/middleware"
	"souschef/internal/recipeapi"
	"souschef/internal/repository/postgres"
	"souschef/internal/service"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	dbMaxRetries      = 30
	dbRetryDelay      = 2 * time.Second
	httpShutdownGrace = 10 * time.Second
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting souschef")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := connectDatabase(ctx, cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	recipeRepo := postgres.NewRecipeRepo(db, logger)
	if err := recipeRepo.EnsureSchema(); err != nil {
		logger.Fatal("Failed to prepare schema", zap.Error(err))
	}
	statsRepo := postgres.NewStatsRepo(db)

	engine := dialogue.NewClient(
		cfg.Dialogue.URL,
		cfg.Dialogue.WorkspaceID,
		cfg.Dialogue.Version,
		cfg.Dialogue.Username,
		cfg.Dialogue.Password,
	)
	lookup := recipeapi.NewClient(cfg.RecipeAPI.URL, cfg.RecipeAPI.Key)

	router := service.NewRouter(engine, lookup, recipeRepo, logger, cfg.TurnTimeout)
	statsService := service.NewStatsService(statsRepo, logger)

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			logger.Error("Bot handler error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	bot.Use(middleware.IgnoreBots(logger))
	h := handler.NewHandler(bot, router, logger)
	h.RegisterHandlers()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpapi.NewRouter(statsService, db, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Stats API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Stats API stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Stats API shutdown incomplete", zap.Error(err))
	}

	logger.Info("Stopped gracefully")
}

// connectDatabase connects to PostgreSQL, retrying while the server comes up
func connectDatabase(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	var err error

	for attempt := 1; attempt <= dbMaxRetries; attempt++ {
		var db *sql.DB
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				db.SetMaxOpenConns(25)
				db.SetMaxIdleConns(5)
				db.SetConnMaxLifetime(5 * time.Minute)
				return db, nil
			}
			db.Close()
		}

		logger.Warn("Database not ready",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dbRetryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", dbMaxRetries, err)
}
