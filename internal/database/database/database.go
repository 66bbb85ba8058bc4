// Package database provides PostgreSQL connection management for the task tracker.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	appConfig "github.com/festy23/team_tasks/internal/config"
	"github.com/festy23/team_tasks/internal/database/config"
	"github.com/festy23/team_tasks/internal/database/pool"
	"github.com/festy23/team_tasks/pkg/retry"
)

// connectTimeout bounds the whole retrying connection attempt.
const connectTimeout = 2 * time.Minute

// Options groups everything needed to open a connection.
type Options struct {
	DB     config.Config
	Retry  retry.Config
	Pool   pool.Config
	Logger *zap.SugaredLogger
	// SQLLevel and SlowQuery configure statement logging, see LoggerConfig.
	SQLLevel  string
	SlowQuery time.Duration
}

// OptionsFromEnv loads connection, retry and pool settings from environment
// variables and takes SQL logging settings from the service logger config.
func OptionsFromEnv(logCfg appConfig.LoggerConfig, logger *zap.SugaredLogger) Options {
	return Options{
		DB:        config.LoadConfigFromEnv(),
		Retry:     config.LoadRetryConfigFromEnv(),
		Pool:      pool.LoadPoolConfigFromEnv(),
		Logger:    logger,
		SQLLevel:  logCfg.SQLLevel,
		SlowQuery: logCfg.SlowQuery,
	}
}

// Open connects to PostgreSQL with retry and configures the connection pool.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	dsn := config.BuildDSN(opts.DB)
	retryCfg := opts.Retry
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("database connection attempt failed",
			"attempt", attempt,
			"host", opts.DB.Host,
			"retry_in", delay,
			"error", config.SanitizeError(err, opts.DB),
		)
	}

	attempts := 0
	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		attempts++
		return gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         NewGormLogger(logger, ParseSQLLevel(opts.SQLLevel), opts.SlowQuery),
			TranslateError: true,
		})
	})
	if err != nil {
		return nil, config.SanitizeError(err, opts.DB)
	}

	if err := pool.SetupConnectionPool(db, opts.Pool); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("database connected", "host", opts.DB.Host, "db", opts.DB.DBName, "attempts", attempts)
	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
