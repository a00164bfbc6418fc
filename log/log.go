// Package log provides structured logging for the eofcheck toolkit. It
// wraps Go's log/slog with conveniences such as per-module child loggers.
package log

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with this toolkit's conveniences: per-module
// child loggers and a choice of output rendering via NewWithFormat.
type Logger struct {
	inner *slog.Logger
}

// Output format names accepted by NewWithFormat.
const (
	FormatJSON  = "json"
	FormatText  = "text"
	FormatColor = "color"
)

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler. This
// is useful for testing or for writing to a custom destination.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// NewWithFormat creates a Logger writing to stderr at the given level,
// rendering each line with the named formatter: FormatJSON is equivalent
// to New, while FormatText and FormatColor route through this package's
// TextFormatter/ColorFormatter for interactive terminal use (the CLI's
// -log-format flag). An unrecognised format falls back to FormatJSON.
func NewWithFormat(level slog.Level, format string) *Logger {
	switch format {
	case FormatText:
		return NewWithHandler(newFormatterHandler(&TextFormatter{}, level, os.Stderr))
	case FormatColor:
		return NewWithHandler(newFormatterHandler(&ColorFormatter{}, level, os.Stderr))
	default:
		return New(level)
	}
}

// LevelFromVerbosity maps the 0-5 verbosity scale CLIs in this codebase
// expose on the command line to an slog.Level: 0-1 error-only, 2 warn, 3
// info, 4-5 debug.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 1:
		return slog.LevelError
	case v == 2:
		return slog.LevelWarn
	case v == 3:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute. This
// is the primary way subsystems (vm, cmd, ...) obtain their own contextual
// logger.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// ---------------------------------------------------------------------------
// Package-level convenience functions -- delegate to defaultLogger.
// ---------------------------------------------------------------------------

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
