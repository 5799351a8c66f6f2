// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration. An
// in-memory SQLite driver is supported for tests.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. Schema
// ownership lives with the feature packages: each feature declares its GORM
// models and the application migrates them at startup.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
