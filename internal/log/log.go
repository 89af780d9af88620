package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LevelNone sits above every level slog emits, so nothing gets through.
const LevelNone = slog.Level(100)

func LevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		return LevelNone
	default:
		return slog.LevelError
	}
}

// ConfigureWriter opens logFile for appending, creating parent directories
// as needed. An empty path or any failure falls back to stderr.
func ConfigureWriter(logFile string) *os.File {
	if logFile == "" {
		return os.Stderr
	}
	// Create parent directories if they don't exist
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	logWriter, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	return logWriter
}

func NewHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	options := &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}
	if strings.EqualFold(format, "text") {
		return slog.NewTextHandler(w, options)
	}
	return slog.NewJSONHandler(w, options)
}

// Setup installs the default slog logger and returns a function that closes
// the log file, if one was opened.
func Setup(level, logFile, format string) (closer func() error) {
	w := ConfigureWriter(logFile)
	slog.SetDefault(slog.New(NewHandler(w, LevelFromString(level), format)))

	if w == os.Stderr {
		return func() error { return nil }
	}
	return w.Close
}
