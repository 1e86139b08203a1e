package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/soaringjerry/Quiz/internal/api"
	"github.com/soaringjerry/Quiz/internal/config"
	dbstore "github.com/soaringjerry/Quiz/internal/db"
	"github.com/soaringjerry/Quiz/internal/logger"
	"github.com/soaringjerry/Quiz/internal/models"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	questions, err := api.LoadQuestions(cfg.Questions.Path)
	if err != nil {
		log.Error("load questions", zap.String("path", cfg.Questions.Path), zap.Error(err))
		return 1
	}

	store, closeStore, err := openStore(ctx, cfg, questions)
	if err != nil {
		log.Error("open store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
		return 1
	}
	defer closeStore()

	rt := api.NewRouter(store, log, api.Options{
		Commit:       cfg.Commit,
		BuildTime:    cfg.BuildTime,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})
	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: rt.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info("quiz server listening",
		zap.String("addr", cfg.Addr),
		zap.String("store", cfg.Store.Backend),
		zap.Int("questions", len(questions)),
	)

	code := 0
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
		code = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
	return code
}

// openStore builds the configured score store. Both backends hold data
// only for the life of the process.
func openStore(ctx context.Context, cfg *config.Config, questions []*models.Question) (api.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		sqliteDB, err := dbstore.Open(ctx, cfg.Store.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() { _ = sqliteDB.Close() }
		if err := dbstore.RunMigrations(ctx, sqliteDB, cfg.Store.MigrationsDir); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		store, err := dbstore.NewSQLiteStore(ctx, sqliteDB, questions)
		if err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("init sqlite store: %w", err)
		}
		return store, closeDB, nil
	default:
		return api.NewMemoryStore(questions), func() {}, nil
	}
}
