package utils

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type contextKey string

const loggerKey = contextKey("logger")

// NewLogger builds the service logger. Entries are JSON and go to stdout, or
// are appended to filePath when it is set.
func NewLogger(level string, filePath string) (*logrus.Logger, error) {
	var out io.Writer = os.Stdout
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
	}
	return newLogger(ParseLevel(level), out), nil
}

func newLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}

// ParseLevel is logrus.ParseLevel with an info fallback for empty or unknown values.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// ContextLogger returns the logger stored by WithLogger, if any.
func ContextLogger(ctx context.Context) (logrus.FieldLogger, bool) {
	logger, ok := ctx.Value(loggerKey).(logrus.FieldLogger)
	return logger, ok
}

// LoggerFromContext falls back to a stderr text logger.
func LoggerFromContext(ctx context.Context) logrus.FieldLogger {
	if logger, ok := ContextLogger(ctx); ok {
		return logger
	}
	fallback := logrus.New()
	fallback.SetFormatter(&logrus.TextFormatter{})
	return fallback
}
