package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the slog logger described by Log. Verbose forces the
// debug level regardless of the configured one.
func (c *Config) NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level, err := c.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
