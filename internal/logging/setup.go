package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the global slog logger: JSON to stdout at INFO, fanned out
// to any extra handlers (the Postgres error sink).
func Setup(extra ...slog.Handler) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, extra...)))
}

func NewHandler(w io.Writer, extra ...slog.Handler) slog.Handler {
	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}
	return handler
}
