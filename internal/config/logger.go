package config

import (
	"fmt"
	"slices"
	"time"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
	sqlLevels  = []string{"silent", "error", "warn", "info"}
)

// LoggerConfig holds logging configuration for the service and its SQL layer.
type LoggerConfig struct {
	Level  string
	Format string
	// Output is stdout, stderr or a file path.
	Output string
	// SQLLevel controls gorm statement logging (silent, error, warn, info).
	SQLLevel string
	// SlowQuery is the duration above which a statement is logged as slow.
	SlowQuery time.Duration
}

// LoadLoggerConfigFromEnv reads LOG_* variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:     GetEnv("LOG_LEVEL", "info"),
		Format:    GetEnv("LOG_FORMAT", "json"),
		Output:    GetEnv("LOG_OUTPUT", "stdout"),
		SQLLevel:  GetEnv("LOG_SQL_LEVEL", "warn"),
		SlowQuery: GetEnvDuration("LOG_SLOW_QUERY", 200*time.Millisecond),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	if !slices.Contains(logLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of %v)", c.Level, logLevels)
	}
	if !slices.Contains(logFormats, c.Format) {
		return fmt.Errorf("invalid log format: %s (must be one of %v)", c.Format, logFormats)
	}
	if !slices.Contains(sqlLevels, c.SQLLevel) {
		return fmt.Errorf("invalid sql log level: %s (must be one of %v)", c.SQLLevel, sqlLevels)
	}
	if c.SlowQuery < 0 {
		return fmt.Errorf("slow query threshold must not be negative")
	}
	return nil
}

// IsProduction reports whether structured, non-debug logging is configured.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}
