// Package osa runs Open Scripting Architecture programs (JavaScript for
// Automation and AppleScript) through osascript.
//
// Everything in xa that talks to another application ends up here: object
// wrappers render a JXA program, a Runner executes it, and Decode turns the
// JSON envelope written by the program prelude back into Go data.
package osa

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/execabs"
)

// Language selects the OSA language component.
type Language string

const (
	JavaScript  Language = "JavaScript"
	AppleScript Language = "AppleScript"
)

// Script is a program handed to a Runner.
type Script struct {
	Language Language
	Source   string
	// Args are passed to the script's run handler.
	Args []string
}

// Runner executes scripts. Implementations must be safe for concurrent use.
type Runner interface {
	Run(ctx context.Context, s Script) ([]byte, error)
}

// DefaultTimeout bounds a single script when CLIRunner.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// CLIRunner executes scripts with the osascript command.
type CLIRunner struct {
	// Path is the osascript binary. Defaults to "osascript".
	Path string
	// Timeout bounds each script. Zero uses DefaultTimeout, negative disables it.
	Timeout time.Duration
	// Logger receives one debug record per script.
	Logger *slog.Logger
}

// NewCLIRunner returns a runner using the osascript found in PATH.
func NewCLIRunner() *CLIRunner {
	return &CLIRunner{}
}

// Run feeds s.Source to osascript on stdin and returns its standard output
// with the trailing newline removed.
func (r *CLIRunner) Run(ctx context.Context, s Script) ([]byte, error) {
	lang := s.Language
	if lang == "" {
		lang = JavaScript
	}
	path := r.Path
	if path == "" {
		path = "osascript"
	}

	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	args := []string{"-l", string(lang)}
	if len(s.Args) > 0 {
		args = append(args, "-")
		args = append(args, s.Args...)
	}

	cmd := execabs.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(s.Source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	id := uuid.NewString()
	start := time.Now()
	err := cmd.Run()
	r.logger().Debug("xa: osascript",
		"id", id,
		"language", lang,
		"bytes", len(s.Source),
		"duration", time.Since(start),
		"error", err,
	)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &ScriptError{Code: CodeTimeout, Message: fmt.Sprintf("osascript did not finish within %v", timeout)}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ParseError(stderr.String(), err)
	}
	return bytes.TrimRight(stdout.Bytes(), "\n"), nil
}

func (r *CLIRunner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
