package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// NewLogger builds the run logger from log_level and log_format. Every record
// carries a run_id so that lines from one run can be grouped.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("run_id", uuid.NewString())
}

// OpenLogger is NewLogger with log_file support: when set, records go to
// console and are appended to the file. The returned close function must be
// called once the run is over.
func (c *Config) OpenLogger(console io.Writer) (*slog.Logger, func() error, error) {
	if c.LogFile == "" {
		return c.NewLogger(console), func() error { return nil }, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return c.NewLogger(io.MultiWriter(console, f)), f.Close, nil
}

func parseLevel(level string) slog.Level {
	switch level {
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
