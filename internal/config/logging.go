package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var logLevel = new(slog.LevelVar)

// ParseLevel maps DEBUG, INFO, WARN or ERROR (any case) to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q", s)
	}
}

// ConfigureLogging sets up the global default logger with a TextHandler on
// stderr. Unknown levels fall back to Info.
func ConfigureLogging(level string) {
	configureLogging(os.Stderr, level)
}

func configureLogging(w io.Writer, level string) {
	lvl, _ := ParseLevel(level)
	logLevel.Set(lvl)

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// SetLogLevel changes the level of the logger set up by ConfigureLogging
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}
