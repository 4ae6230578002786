package logger

import (
	"log/slog"
	"os"
)

// Logger wraps slog with process-fatal logging.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing JSON records at the given level to stdout.
func New(level int) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.Level(level),
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewWithHandler creates a Logger over an explicit handler.
func NewWithHandler(handler slog.Handler) *Logger {
	return &Logger{Logger: slog.New(handler)}
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
