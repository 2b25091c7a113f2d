// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger's shape.
type Options struct {
	Level string // zap level name; empty means info
	Debug bool   // forces debug level and human-readable console output
}

// Logger is the process logger.
type Logger struct {
	*zap.Logger
}

// New builds a logger writing to stderr. Production JSON encoding is the
// default; Debug switches to the development console encoder.
func New(opts Options) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var config zap.Config
	if opts.Debug {
		config = zap.NewDevelopmentConfig()
		lvl = zapcore.DebugLevel
	} else {
		config = zap.NewProductionConfig()
		config.Sampling = nil
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{Logger: l.Named("ghostprotocol")}, nil
}

// Sync flushes buffered entries. Errors from syncing a terminal are
// expected and dropped.
func (l *Logger) Sync() {
	_ = l.Logger.Sync()
}
