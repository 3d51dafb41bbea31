// Package logger provides structured file-based logging for TUI
// applications, where stderr is not available while the program owns the
// terminal. Each session logs to its own file in the XDG state directory.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidLogLevel is returned when an unrecognised log level is provided.
var ErrInvalidLogLevel = errors.New("invalid log level")

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Logger wraps slog with per-session file output.
type Logger struct {
	log  *slog.Logger
	file *os.File
}

// New creates a Logger writing to $XDG_STATE_HOME/keycast/keycast-<pid>.log.
// An empty level returns a no-op logger that never touches the filesystem.
// Valid levels: debug, info, warn, error (case-insensitive).
func New(level string) (*Logger, error) {
	if level == "" {
		return &Logger{log: slog.New(slog.NewTextHandler(io.Discard, nil))}, nil
	}

	slogLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	file, err := openSessionFile()
	if err != nil {
		return nil, err
	}

	l := &Logger{
		log:  slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slogLevel})),
		file: file,
	}

	l.Info("keycast session started", "pid", os.Getpid(), "level", strings.ToLower(level))

	return l, nil
}

// Path returns the log file path, or "" for a no-op logger.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close closes the log file if open.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

// Debug logs a debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) { l.log.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) { l.log.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) { l.log.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) { l.log.Error(msg, args...) }

// openSessionFile creates the state directory and opens this session's log
// file, clobbering any leftover from a previous process with the same pid.
func openSessionFile() (*os.File, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".local", "state")
	}

	logDir := filepath.Join(stateDir, "keycast")
	if err := os.MkdirAll(logDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("keycast-%d.log", os.Getpid()))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	return file, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return -1, fmt.Errorf("%w: %s (use debug, info, warn, error)", ErrInvalidLogLevel, level)
	}
}
