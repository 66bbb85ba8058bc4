package config

import "fmt"

// NotifyConfig holds notification outbox configuration.
type NotifyConfig struct {
	// OutboxBuffer is the capacity of the in-memory notification queue.
	OutboxBuffer int
	// SentryDSN enables error reporting when not empty.
	SentryDSN string
	// SentryEnvironment tags reported events.
	SentryEnvironment string
}

// LoadNotifyConfigFromEnv loads notification configuration from environment variables.
func LoadNotifyConfigFromEnv() NotifyConfig {
	return NotifyConfig{
		OutboxBuffer:      GetEnvInt("NOTIFY_OUTBOX_BUFFER", 256),
		SentryDSN:         GetEnv("SENTRY_DSN", ""),
		SentryEnvironment: GetEnv("SENTRY_ENVIRONMENT", "development"),
	}
}

// Validate validates notification configuration.
func (c NotifyConfig) Validate() error {
	if c.OutboxBuffer <= 0 {
		return fmt.Errorf("OutboxBuffer must be greater than 0")
	}
	return nil
}
