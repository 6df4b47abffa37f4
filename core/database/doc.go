// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server or a SQLite file from the application's
// configuration. The same handle backs run history and table-backed data sources.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies the pool settings and pings
// the database before returning.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns so the sources command can show what a
// table-backed rule set will see.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "gl_export")
package database
