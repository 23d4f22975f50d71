package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log is the process-wide structured logger. It is slog.Default() until Init runs.
var Log = slog.Default()

// Options controls the handler built by Init.
type Options struct {
	Level      string // debug, info, warn, error
	Production bool   // JSON output when true, text otherwise
	File       string // optional path; output is written to stdout and appended here
}

// Init builds the global logger. The returned closer releases the log file, if any.
func Init(opts Options) (io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return nil, fmt.Errorf("logger: open %s: %w", opts.File, err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f
	}

	Log = slog.New(NewHandler(out, opts))
	slog.SetDefault(Log)
	return closer, nil
}

// NewHandler returns the handler Init would install, writing to w.
func NewHandler(w io.Writer, opts Options) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if opts.Production {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

// ParseLevel maps a level name to slog.Level; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
