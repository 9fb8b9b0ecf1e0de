// Package logging configures the process-wide slog logger.
//
// LOG_FORMAT=text (default) uses tint's colored handler on stderr,
// LOG_FORMAT=json emits one JSON object per line on stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger for the given level and format names.
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, os.Stdout, ParseLevel(level), format))
}

func New(textOut, jsonOut io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(tint.NewHandler(textOut, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
	}))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
