// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections based
// on the application's configuration. The database is optional: it only backs the
// price snapshot history, and the card and price caches run without it.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the
// database with the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns retrieves table columns so the health feature can verify the
// snapshot tables against the GORM models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "price_snapshots")
package database
