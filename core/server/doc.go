// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings,
// such as the JWT secret and the runtime environment.
//
// # Configuration
//
// The Config struct defines the HTTP port, the bearer token secret, the
// environment name and the request body limit.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start to configure Fiber.
package server
