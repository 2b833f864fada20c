// Package database handles database connections, error classification and schema inspection.
//
// It wraps GORM to configure MySQL, PostgreSQL or SQLite connections from the application's
// configuration. Connections are opened with TranslateError enabled so that unique constraint
// violations surface as gorm.ErrDuplicatedKey regardless of the driver.
//
// # Connect
//
// Connect opens the configured store and pings it. A store that cannot be reached is reported
// as ErrUnavailable; callers treat that as fatal and do not retry.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table, used by the integrity feature to compare
// the reporting tables with the models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if errors.Is(err, database.ErrUnavailable) {
//	    log.Fatal("Database unreachable", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "flight_records")
package database
