// Package logger wraps zap initialization so main can configure the
// log level from a single string.
package logger

import (
	"go.uber.org/zap"
)

// Logger carries the configured zap logger.
type Logger struct {
	// Log is the underlying zap logger. It is a no-op until Init
	// succeeds.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap instance so callers never
// hold a nil logger.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the no-op logger with a production zap logger at the
// given level ("Debug", "Info", "Warn", "Error").
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}
