package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database file path
//	-u uploads directory
//	-c/-config json file path with configs
//	-session-ttl session validity window (e.g., "168h")
//	-sweep-interval expired-session sweep interval (e.g., "10m")
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	return parseFlags(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:])
}

// parseFlags is the testable core of ParseFlags: it registers every flag on
// the supplied FlagSet and parses the given argument list.
func parseFlags(fs *flag.FlagSet, args []string) *StructuredConfig {
	var serverAddress string
	var databasePath string
	var uploadsDir string
	var jsonConfigPath string
	var sessionTTL time.Duration
	var sweepInterval time.Duration
	var requestTimeout time.Duration

	fs.StringVar(&serverAddress, "a", "", "Net address host:port")
	fs.StringVar(&databasePath, "d", "", "Database file path")
	fs.StringVar(&uploadsDir, "u", "", "Uploads directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&sessionTTL, "session-ttl", 0, "Session validity window (e.g., 168h)")
	fs.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired-session sweep interval (e.g., 10m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	_ = fs.Parse(args)

	return &StructuredConfig{
		App: App{
			SessionTTL: sessionTTL,
		},
		Storage: Storage{
			DB: DB{
				Path: databasePath,
			},
			Files: Files{
				UploadsDir: uploadsDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
