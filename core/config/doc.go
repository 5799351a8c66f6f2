// Package config provides configuration management for subtrack.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key, cron secret)
//   - Database: MySQL connection details (SQLite for tests)
//   - Storage: S3/MinIO credentials and bucket settings for report archiving
//   - Log: Logging level and format
//   - Sync: Usage sync engine settings (provider timeout, default category)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
