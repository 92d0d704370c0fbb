package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init initializes the global slog logger at the given level, writing to stderr
func Init(level string) {
	InitWithWriter(os.Stderr, level)
}

// InitWithWriter is Init with an explicit destination
func InitWithWriter(w io.Writer, level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
}

// LevelFor maps the debug setting to a log level name
func LevelFor(debug bool) string {
	if debug {
		return "debug"
	}
	return "warn"
}
