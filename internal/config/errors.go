package config

import (
	"errors"
	"time"
)

// Built-in defaults applied by defaultConfig for any setting left unset by
// every other configuration source.
const (
	defaultSessionTTL     = 7 * 24 * time.Hour
	defaultDatabasePath   = "data/social_memo.db"
	defaultUploadsDir     = "uploads"
	defaultHTTPAddress    = ":8080"
	defaultRequestTimeout = 30 * time.Second
	defaultSweepInterval  = 10 * time.Minute
)

// Validation errors returned by [StructuredConfig.validate]. Callers can
// match against them with [errors.Is].
var (
	// ErrInvalidStorageConfigs is returned when the database file path is
	// empty after merging every configuration source.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs")

	// ErrInvalidServerConfigs is returned when the HTTP address is empty or
	// the request timeout is non-positive.
	ErrInvalidServerConfigs = errors.New("invalid server configs")

	// ErrInvalidAppConfigs is returned when the session TTL is negative.
	ErrInvalidAppConfigs = errors.New("invalid app configs")

	// ErrInvalidWorkerConfigs is returned when the sweep interval is
	// non-positive.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configs")
)
