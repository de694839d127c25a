package app

import (
	"log/slog"
	"os"
	"strings"
)

// parseLogLevel maps the LOG_LEVEL setting onto a slog level, defaulting to
// info for anything unrecognized.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns the process logger: JSON in production-style setups
// (LOG_FORMAT=json), text otherwise. Source locations are attached outside
// production, where the extra volume is acceptable.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}
	if cfg != nil {
		opts.Level = parseLogLevel(cfg.LogLevel)
		opts.AddSource = !cfg.IsProduction()
	}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
