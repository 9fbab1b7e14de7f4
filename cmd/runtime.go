package cmd

import (
	"fmt"

	"rotor-viewer/core/config"
	"rotor-viewer/core/database"
	"rotor-viewer/core/logger"
	"rotor-viewer/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command builds from the configuration.
type runtime struct {
	cfg   *config.Config
	logg  *zap.Logger
	store storage.Client
	db    *gorm.DB
}

// newRuntime loads the configuration and creates the logger. The storage client is
// created when storage is enabled, and the database is connected when withDB is set.
// A failed database connection only logs a warning.
func newRuntime(withDB bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logg: logg}

	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		rt.store = store
	}

	if withDB {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			rt.db = conn
			logg.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))
		}
	}

	return rt, nil
}
