// Package logger configures the process-wide slog logger for the CLI.
// The simulated serial console owns stdout, so log output goes to a file
// (or is discarded) rather than to the terminal.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger instance. It is initialized to discard all output
// by default. Call Init to enable logging to a file.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Path  string     // Log file path; empty disables logging.
	Level slog.Level // Minimum log level. Default: LevelInfo.
}

// Init configures logging. Call from main() before any log calls.
func Init(opts Options) error {
	if opts.Path == "" {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	L = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return nil
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
