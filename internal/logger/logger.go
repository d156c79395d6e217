package logger

import (
	"io"
	"log/slog"
)

// New builds the process logger. The batch command passes stderr and env "cli"
// so stdout stays reserved for ranked output and routine debug lines stay quiet.
func New(env string, w io.Writer) *slog.Logger {
	var h slog.Handler
	switch env {
	case "prod":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case "cli":
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h)
}
