package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// social-memo server. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the session validity
	// window.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the embedded database file and the
	// uploaded-asset directory tree.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the session
// lifecycle.
type App struct {
	// SessionTTL is the fixed validity window of a session token, measured
	// from issuance. There is no renewal; once the window passes the token
	// is invalid. Defaults to 168h (7 days).
	// Env: APP_SESSION_TTL
	SessionTTL time.Duration `env:"SESSION_TTL"`
}

// Storage groups the configuration for all persisted state owned by the
// server.
type Storage struct {
	// DB holds the embedded database file settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system settings for uploaded binary assets.
	Files Files `envPrefix:"FILES_"`
}

// DB holds the location of the single serialized database image.
type DB struct {
	// Path is the database file path. The parent directory is created on
	// first run if absent. The file is overwritten wholesale after every
	// mutating statement.
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Files holds file-system settings for uploaded binary assets (avatars,
// photos, activity covers, cards). The database stores only generated
// filenames, never the blobs themselves.
type Files struct {
	// UploadsDir is the root of the uploaded-asset directory tree.
	// Category subdirectories are created on first run if absent.
	// Env: STORAGE_FILES_UPLOADS_DIR
	UploadsDir string `env:"UPLOADS_DIR"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SweepInterval is how often the session sweeper evicts expired
	// tokens. Eviction also happens lazily on lookup; the sweeper only
	// keeps abandoned tokens from accumulating.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
