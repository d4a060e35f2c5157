// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL, PostgreSQL or SQLite connections from the
// application's configuration, with pool limits and a bounded initial ping.
//
// # Schema Inspection
//
// GetTableColumns reads live column definitions, and MissingColumns compares
// them with the columns declared by GORM models. The migrate command uses this
// to verify that a database matches the statistics, skills and member models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, &models.MemberStats{})
package database
