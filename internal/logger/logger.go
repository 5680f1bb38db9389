// Package logger wraps zap with the configuration used across coinpulse.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger with additional functionality.
type Logger struct {
	*zap.Logger
}

// NewLogger creates a new logger instance with production configuration.
// Output goes to stdout, errors to stderr.
func NewLogger() (*Logger, error) {
	return newAtLevel(zapcore.InfoLevel)
}

// NewDebugLogger creates a logger that also emits debug-level entries,
// used when the --verbose flag is set.
func NewDebugLogger() (*Logger, error) {
	return newAtLevel(zapcore.DebugLevel)
}

// NewNop creates a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func newAtLevel(level zapcore.Level) (*Logger, error) {
	config := zap.NewProductionConfig()

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zapLogger}, nil
}

// Named returns a child logger with the given name segment appended,
// keeping the wrapper type.
func (l *Logger) Named(name string) *Logger {
	if l.Logger == nil {
		return l
	}

	return &Logger{Logger: l.Logger.Named(name)}
}

// With returns a child logger carrying the given fields, keeping the
// wrapper type.
func (l *Logger) With(fields ...zap.Field) *Logger {
	if l.Logger == nil {
		return l
	}

	return &Logger{Logger: l.Logger.With(fields...)}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}
