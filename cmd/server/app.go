package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MaharajTanim/apricity/internal/config"
	"github.com/MaharajTanim/apricity/internal/platform/gemini"
	"github.com/MaharajTanim/apricity/internal/platform/logger"
	"github.com/MaharajTanim/apricity/internal/platform/postgres"
	"github.com/MaharajTanim/apricity/internal/queue"
	"github.com/MaharajTanim/apricity/internal/service"
	"github.com/MaharajTanim/apricity/internal/worker"
)

// application holds the fully wired server dependencies.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *sql.DB
	queue        *queue.Queue
	entryService service.EntryService
}

// initializeApp loads configuration and wires all application components:
// logging, the database connection and migrations, the Gemini analyzer, the
// background queue with its analysis worker, and the entry service.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"queue_max_retries", cfg.Queue.MaxRetries,
		"queue_retry_delay", cfg.Queue.RetryDelay())

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, err
	}

	entryStore := postgres.NewPostgresEntryStore(db, appLogger)

	analyzer, err := gemini.NewAnalyzer(ctx, appLogger, cfg.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	jobQueue := queue.New(queue.Config{
		MaxRetries: cfg.Queue.MaxRetries,
		RetryDelay: cfg.Queue.RetryDelay(),
	}, appLogger)

	analysisWorker, err := worker.NewEntryAnalysisWorker(entryStore, analyzer, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis worker: %w", err)
	}
	jobQueue.Register(worker.JobTypeEntryAnalysis, analysisWorker)

	entryService, err := service.NewEntryService(entryStore, jobQueue, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry service: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       appLogger,
		db:           db,
		queue:        jobQueue,
		entryService: entryService,
	}, nil
}

// cleanup releases resources held by the application. Pending queue jobs are
// volatile and are dropped with the process.
func (app *application) cleanup() {
	if dropped := app.queue.Clear(); dropped > 0 {
		app.logger.Warn("dropping pending analysis jobs on shutdown", "count", dropped)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}
