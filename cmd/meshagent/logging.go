package main

import (
	"log/slog"
	"os"
)

// setupLogger builds the process logger. The returned LevelVar allows the
// controller's logging-level requests to retune the level at runtime.
func setupLogger(level, format string) (*slog.Logger, *slog.LevelVar) {
	levelVar := &slog.LevelVar{}
	switch level {
	case "debug":
		levelVar.Set(slog.LevelDebug)
	case "warn":
		levelVar.Set(slog.LevelWarn)
	case "error":
		levelVar.Set(slog.LevelError)
	default:
		levelVar.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: levelVar}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler), levelVar
}
