package logger

import (
	"os"
	"time"

	"github.com/blog-platform-api/internal/config"
	"github.com/rs/zerolog"
)

// New creates a zerolog logger from the loaded logging settings
func New(cfg config.LogConfig) zerolog.Logger {
	// Configure zerolog
	zerolog.TimeFieldFormat = time.RFC3339

	var logLevel zerolog.Level
	switch cfg.Level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	// Pretty console output for local development
	if cfg.Format == "pretty" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(logLevel).
			With().
			Timestamp().
			Caller().
			Str("service", "blog-platform-api").
			Logger()
	}

	// JSON output for production
	return zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", "blog-platform-api").
		Logger()
}
