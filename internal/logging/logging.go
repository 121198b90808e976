package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// TimeFormat is the timestamp layout used by the text handler.
const TimeFormat = "2006-01-02 15:04:05"

// Levels lists the accepted --log-level values in ascending severity.
var Levels = []string{"DEBUG", "INFO", "WARNING", "ERROR"}

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (DEBUG, INFO, WARNING, ERROR).
	Level string
	// FilePath is an optional log file. Empty means console only.
	FilePath string
	// Format selects the handler: "text" (default) or "json".
	Format string
	// MaxSizeMB is the size in MB at which the log file is rotated (default: 10).
	MaxSizeMB int
	// MaxFiles is the number of rotated files kept (default: 5).
	MaxFiles int
}

// DefaultConfig returns console-only INFO logging.
func DefaultConfig() Config {
	return Config{
		Level:     "INFO",
		Format:    "text",
		MaxSizeMB: 10,
		MaxFiles:  5,
	}
}

// Setup builds a logger writing to console and, when cfg.FilePath is set,
// appending to that file as well. The returned cleanup closes the file sink
// and is safe to call when no file was opened.
func Setup(cfg Config, console io.Writer) (*slog.Logger, func(), error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	out := console
	cleanup := func() {}

	if cfg.FilePath != "" {
		maxSize, maxFiles := cfg.MaxSizeMB, cfg.MaxFiles
		if maxSize <= 0 {
			maxSize = 10
		}
		if maxFiles <= 0 {
			maxFiles = 5
		}
		writer, err := NewRotatingWriter(cfg.FilePath, maxSize, maxFiles)
		if err != nil {
			return nil, nil, err
		}
		if console != nil {
			out = io.MultiWriter(console, writer)
		} else {
			out = writer
		}
		cleanup = func() {
			_ = writer.Sync()
			_ = writer.Close()
		}
	}

	if out == nil {
		out = io.Discard
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "", "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		cleanup()
		return nil, nil, fmt.Errorf("unknown log format %q (use: text, json)", cfg.Format)
	}

	return slog.New(handler), cleanup, nil
}

// Discard returns a logger that drops everything. Useful as a default for
// library types that accept an optional logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// replaceAttr renders the time with TimeFormat and the level with the
// WARNING spelling used on the command line.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		if t, ok := a.Value.Any().(interface{ Format(string) string }); ok {
			return slog.String(slog.TimeKey, t.Format(TimeFormat))
		}
	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, LevelName(l))
		}
	}
	return a
}

// ParseLevel converts one of Levels to slog.Level, ignoring case.
// An empty name means INFO.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (choose from %s)", level, strings.Join(Levels, ", "))
	}
}

// LevelName returns the display name for l.
func LevelName(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return "DEBUG"
	case l < slog.LevelWarn:
		return "INFO"
	case l < slog.LevelError:
		return "WARNING"
	default:
		return "ERROR"
	}
}
