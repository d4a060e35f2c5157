// Package config loads the application configuration.
//
// Values come from an optional .env file and the process environment, with
// defaults declared through `default` struct tags on every partial config.
// Nested keys map to upper-case variables joined by underscores, so
// `database.timeout_seconds` is read from DATABASE_TIMEOUT_SECONDS.
package config
