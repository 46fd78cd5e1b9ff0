// Package logging builds the slog.Logger used by xa from XA_ environment
// variables.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls the logger built by New.
type Options struct {
	// Debug lowers the level to debug.
	Debug bool
	// Dest is "stderr", "file:<path>" or "both:<path>".
	Dest string
	// JSON selects the JSON handler.
	JSON bool
	// Time and Level keep the time and level attributes of text output.
	Time  bool
	Level bool
	// Output replaces stderr, mainly for tests.
	Output io.Writer
}

// FromEnv reads XA_DEBUG, XA_LOG_DEST, XA_LOG_JSON, XA_LOG_TIME and
// XA_LOG_LEVEL.
func FromEnv() Options {
	return Options{
		Debug: os.Getenv("XA_DEBUG") == "1",
		Dest:  os.Getenv("XA_LOG_DEST"),
		JSON:  os.Getenv("XA_LOG_JSON") == "1",
		Time:  os.Getenv("XA_LOG_TIME") == "1",
		Level: os.Getenv("XA_LOG_LEVEL") == "1",
	}
}

// New creates a configured logger.
func New(opts Options) *slog.Logger {
	stderr := opts.Output
	if stderr == nil {
		stderr = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var writers []io.Writer
	switch {
	case strings.HasPrefix(opts.Dest, "file:"):
		path := strings.TrimPrefix(opts.Dest, "file:")
		if f, err := openLog(path); err == nil {
			writers = append(writers, f)
		} else {
			fmt.Fprintf(stderr, "xa: failed to open log file %s: %v\n", path, err)
			writers = append(writers, stderr)
		}
	case strings.HasPrefix(opts.Dest, "both:"):
		path := strings.TrimPrefix(opts.Dest, "both:")
		writers = append(writers, stderr)
		if f, err := openLog(path); err == nil {
			writers = append(writers, f)
		} else {
			fmt.Fprintf(stderr, "xa: failed to open log file %s: %v\n", path, err)
		}
	default:
		writers = append(writers, stderr)
	}

	output := writers[0]
	if len(writers) > 1 {
		output = io.MultiWriter(writers...)
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && !opts.Time {
					return slog.Attr{}
				}
				if a.Key == slog.LevelKey && !opts.Level {
					return slog.Attr{}
				}
				return a
			},
		})
	}
	return slog.New(handler).With("component", "xa")
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func openLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
