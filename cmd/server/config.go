package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfig records the effective configuration once the real logger exists.
func logConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Server configuration loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"shutdown_timeout", cfg.Server.ShutdownTimeout)

	logger.Debug("Store configuration",
		"id_policy", cfg.Store.IDPolicy,
		"mismatch_policy", cfg.Store.MismatchPolicy)

	logger.Debug("CORS configuration",
		"allowed_origins", cfg.CORS.AllowedOrigins,
		"allow_credentials", cfg.CORS.AllowCredentials)
}
