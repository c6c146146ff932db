// Package setup bootstraps application dependencies in the correct order.
package setup

import (
	"context"

	"github.com/socialsentrix/sentrix/internal/setup/config"
	"github.com/socialsentrix/sentrix/internal/storage"
	"go.uber.org/zap"
)

// App bundles the core dependencies shared by the entrypoints.
type App struct {
	Config   *config.Config // Application configuration
	Logger   *zap.Logger    // Main application logger
	DBLogger *zap.Logger    // Database-specific logger
	DB       storage.Client // Snapshot storage, nil for offline scoring
}

// InitializeApp loads configuration and initializes logging, plus snapshot
// storage when withDB is set. Offline scoring skips the database entirely.
func InitializeApp(ctx context.Context, logDir string, withDB bool) (*App, error) {
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, dbLogger, err := GetLoggers(logDir, cfg.Debug.LogLevel, cfg.Debug.MaxLogsToKeep)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		DBLogger: dbLogger,
	}

	if withDB {
		db, err := storage.NewConnection(ctx, &cfg.PostgreSQL, dbLogger)
		if err != nil {
			return nil, err
		}

		app.DB = db
	}

	return app, nil
}

// Cleanup flushes loggers and closes the database connection.
func (a *App) Cleanup() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	_ = a.Logger.Sync()
	_ = a.DBLogger.Sync()
}
