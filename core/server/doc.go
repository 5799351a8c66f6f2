// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures for server settings, such as the listen
// port and the shared secrets protecting the API and the scheduled sync trigger.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key gating all endpoints,
// and the optional cron secret required by the scheduler-invoked sync trigger.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the sync feature to validate scheduled trigger requests.
package server
