// Package config loads, merges, and validates the server configuration.
//
// Values are collected from environment variables, command-line flags, and
// an optional JSON file, merged in priority order (env > flags > JSON >
// defaults) and validated before the application starts.
package config
