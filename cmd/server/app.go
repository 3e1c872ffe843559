package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *middleware.Metrics

	// Stores
	taskStore store.TaskStore

	// Service interfaces
	taskService service.TaskService

	// Event system
	eventEmitter *events.InMemoryEventEmitter
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var err error
	app.metrics, err = middleware.NewMetrics(app.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register HTTP metrics: %w", err)
	}

	// Initialize store
	idPolicy, err := memory.ParseIDPolicy(cfg.Store.IDPolicy)
	if err != nil {
		return nil, err
	}
	mismatchPolicy, err := memory.ParseMismatchPolicy(cfg.Store.MismatchPolicy)
	if err != nil {
		return nil, err
	}
	app.taskStore = memory.NewTaskStore(
		memory.WithIDPolicy(idPolicy),
		memory.WithMismatchPolicy(mismatchPolicy),
	)
	logger.Info("In-memory task store initialized",
		"id_policy", idPolicy,
		"mismatch_policy", mismatchPolicy)

	// Initialize event emitter and the audit trail
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	audit, err := events.NewAuditHandler(logger, app.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit handler: %w", err)
	}
	app.eventEmitter.RegisterHandler(audit)

	// Initialize task service
	app.taskService, err = service.NewTaskService(app.taskStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns when ctx is cancelled and the server has shut down, or when the
// server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
