package config

import "time"

// Defaults applied when the environment leaves a value unset
const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = "3000"
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	DefaultSessionTTL  = 60 * time.Minute
	DefaultReadTimeout = 30 * time.Second
	DefaultIdleTimeout = 120 * time.Second

	// DefaultMaxUploadMB caps one file selection; staged files are held in memory
	DefaultMaxUploadMB = 100
)
