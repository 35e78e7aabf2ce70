package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hrsys/candidate-api/internal/config"
	"github.com/hrsys/candidate-api/internal/filestore"
	"github.com/hrsys/candidate-api/internal/notification"
	"github.com/hrsys/candidate-api/internal/platform/localfs"
	"github.com/hrsys/candidate-api/internal/platform/mailer"
	"github.com/hrsys/candidate-api/internal/platform/postgres"
	"github.com/hrsys/candidate-api/internal/service"
	"github.com/hrsys/candidate-api/internal/store"
	"github.com/hrsys/candidate-api/internal/task"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	candidateStore store.CandidateStore
	historyStore   store.StatusHistoryStore
	fileStore      filestore.FileStore
	notifier       notification.Notifier

	taskRunner *task.Runner

	candidateService service.CandidateService
}

// newApplication creates an application instance with all dependencies
// initialized. The database connection must already be established and
// migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.candidateStore = postgres.NewCandidateStore(db, logger)
	app.historyStore = postgres.NewStatusHistoryStore(db, logger)
	app.fileStore = localfs.New(cfg.Storage, logger)

	var err error
	app.notifier, err = mailer.New(cfg.SMTP, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	app.taskRunner = task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.Workers,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	app.taskRunner.Start()

	app.candidateService, err = service.NewCandidateService(
		app.candidateStore,
		app.historyStore,
		app.fileStore,
		app.notifier,
		app.taskRunner,
		service.NewTransactionRunner(db),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
