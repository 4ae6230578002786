package testutil

import (
	"io"
	"log/slog"

	"github.com/Beboto/Streamify-Backend/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithHandler(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}
