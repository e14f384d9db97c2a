package glwindow

import (
	"fmt"
	"log/slog"
	"os"
)

var logger = slog.Default()

func ResolveLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

// InitLogger replaces the package logger with a text handler writing to
// stderr at the given level. Without it, logs go through slog's default
// handler.
func InitLogger(level string) error {
	logLevel, err := ResolveLogLevel(level)
	if err != nil {
		return err
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger = slog.New(handler)
	return nil
}

// SetLogger routes all package logging through the given logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
