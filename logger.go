package main

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the application logger. The terminal belongs to the UI, so records
// go to a rotating file; an empty LogFile disables logging.
func newLogger(config *Config) (*slog.Logger, io.Closer) {
	if strings.TrimSpace(config.LogFile) == "" {
		return discardLogger(), io.NopCloser(nil)
	}
	w := &lumberjack.Logger{
		Filename:   config.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(config.LogLevel)})
	return slog.New(h).With(slog.String("app", "mockup")), w
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
