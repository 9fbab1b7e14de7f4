// Package database handles database connections and schema inspection.
//
// It wraps GORM and opens either MySQL or SQLite based on the configured driver.
// The database only stores the model load history, so callers treat a failed
// connection as a warning and keep serving.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns back the integrity check, which verifies the
// history table has every column the ModelLoad model expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database unavailable", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "model_loads", []string{"id", "source"})
package database
