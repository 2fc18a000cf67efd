// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure the connection backing the
// bucket catalog. MySQL is the production driver; SQLite is accepted for
// single node setups and tests.
//
// # Connect
//
// Connect opens the configured driver, enables GORM error translation so
// unique constraint violations surface as gorm.ErrDuplicatedKey, and pings
// the database before returning.
//
// # Schema Inspection
//
// GetTableColumns reads the live column list of a table. The integrity check
// uses it to verify the catalog schema matches what the catalog package
// expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "buckets")
package database
