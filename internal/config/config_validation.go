package config

// defaultConfig returns the built-in defaults used for any setting not
// supplied by env, flags, or the JSON file.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionTTL: defaultSessionTTL,
		},
		Storage: Storage{
			DB: DB{
				Path: defaultDatabasePath,
			},
			Files: Files{
				UploadsDir: defaultUploadsDir,
			},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Workers: Workers{
			SweepInterval: defaultSweepInterval,
		},
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.SessionTTL < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.SweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
