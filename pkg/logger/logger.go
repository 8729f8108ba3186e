// Package logger configures the process-wide slog logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup builds a text slog logger writing to logFile ("stdout", "stderr" or
// a file path) and installs it as the default.
func Setup(logLevel string, logFile string) *slog.Logger {
	var logWriter *os.File
	switch logFile {
	case "", "stdout":
		logWriter = os.Stdout
	case "stderr":
		logWriter = os.Stderr
	default:
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G302,G304 -- log path comes from configuration.
		if err != nil {
			slog.Error("failed to open log file, falling back to stdout", "file", logFile, "error", err)
			logWriter = os.Stdout
		} else {
			logWriter = f
		}
	}

	handlerOptions := &slog.HandlerOptions{Level: getLogLevel(logLevel)}
	log := slog.New(slog.NewTextHandler(logWriter, handlerOptions))
	slog.SetDefault(log)
	return log
}

func getLogLevel(logLevel string) slog.Level {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return level
}
