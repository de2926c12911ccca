// Package logger holds the process-wide zap logger used by the demos.
package logger

import (
	"go.uber.org/zap"
)

// Log is the shared logger. It is a no-op logger until Init is called.
var Log = zap.NewNop()

// Init builds the shared logger for the given level ("debug", "info", "warn", ...).
// Development mode switches to the human-readable console encoder.
func Init(level string, development bool) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}
