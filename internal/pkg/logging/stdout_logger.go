package logging

import (
	"log/slog"
	"os"
	"strings"
)

//go:generate mockgen -destination=../../../gen/mocks/logging/mock_logging.go -package=mocks . Logger

type Logger interface {
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
}

var StdoutLogger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// NewStdoutLogger builds a text logger filtered at the given level ("debug", "info", "warn", "error").
// Unknown or empty levels fall back to info.
func NewStdoutLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

func ParseLevel(level string) slog.Level {
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}

	return parsed
}
