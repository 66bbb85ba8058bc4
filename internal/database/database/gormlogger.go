package database

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// zapWriter adapts a SugaredLogger to the gorm logger Writer interface.
type zapWriter struct {
	logger *zap.SugaredLogger
}

// Printf implements gormlogger.Writer.
func (w zapWriter) Printf(format string, args ...interface{}) {
	w.logger.Debugf(format, args...)
}

// ParseSQLLevel maps LOG_SQL_LEVEL values to gorm log levels. Unknown values fall back to Warn.
func ParseSQLLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// NewGormLogger returns a gorm logger that writes SQL diagnostics through zap.
// Statements slower than slow are logged at the warn level; zero disables it.
func NewGormLogger(logger *zap.SugaredLogger, level gormlogger.LogLevel, slow time.Duration) gormlogger.Interface {
	return gormlogger.New(zapWriter{logger: logger.Named("gorm")}, gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
