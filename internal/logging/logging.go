// Package logging builds the slog loggers used by every command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel accepts debug, info, warn/warning and error (case-insensitive).
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// Setup creates a logger writing text to stderr and, when logFile is set,
// JSON to that file. The returned cleanup closes the file.
func Setup(stderr io.Writer, logFile string, level slog.Level) (*slog.Logger, func() error, error) {
	if logFile == "" {
		return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})), func() error { return nil }, nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", logFile, err)
	}
	return SetupWithWriters(stderr, file, level), file.Close, nil
}

// SetupWithWriters fans out to a text handler and a JSON handler.
func SetupWithWriters(text, json io.Writer, level slog.Level) *slog.Logger {
	textHandler := slog.NewTextHandler(text, &slog.HandlerOptions{Level: level})
	jsonHandler := slog.NewJSONHandler(json, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(textHandler, jsonHandler))
}

// Discard returns a logger that drops everything. Used by tests and by the
// TUI when no log file is configured.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
