package app

import (
	"log/slog"
	"os"
)

// NewLogger returns a configured slog.Logger. LOG_FORMAT=json selects the
// JSON handler; anything else logs human-readable text.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
