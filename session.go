package xa

import (
	"context"
	"log/slog"

	"github.com/tmc/xa/internal/logging"
	"github.com/tmc/xa/internal/system"
	"github.com/tmc/xa/internal/workspace"
	"github.com/tmc/xa/osa"
)

// AppInfo describes a running or launched application.
type AppInfo = workspace.AppInfo

// WindowInfo describes an entry of the window server's window list.
type WindowInfo = workspace.WindowInfo

// LaunchOptions controls how an application is launched.
type LaunchOptions = workspace.LaunchOptions

// Workspace is the part of NSWorkspace and LaunchServices a Session needs.
// The default implementation talks to the window server; tests substitute
// a fake.
type Workspace interface {
	RunningApplications(ctx context.Context) ([]AppInfo, error)
	FrontmostApplication(ctx context.Context) (AppInfo, error)
	Windows(ctx context.Context, onscreenOnly bool) ([]WindowInfo, error)
	LocateApplication(ctx context.Context, name string) (string, error)
	ApplicationPaths(ctx context.Context) ([]string, error)
	Launch(ctx context.Context, path string, opts LaunchOptions) (int, error)
	OpenURL(ctx context.Context, rawURL string) error
	Activate(ctx context.Context, pid int) error
	Hide(ctx context.Context, pid int) error
	Unhide(ctx context.Context, pid int) error
	Terminate(ctx context.Context, pid int) error
	WaitForExit(ctx context.Context, pid int) error
}

// Session carries everything an object wrapper needs to reach its
// application: the script runner, the workspace, the logger and the
// configuration. A Session is immutable after NewSession returns and safe
// for concurrent use.
type Session struct {
	cfg     Config
	runner  osa.Runner
	ws      Workspace
	logger  *slog.Logger
	version func(context.Context) (system.Version, error)
}

// Option configures a Session.
type Option func(*Session)

// WithRunner replaces the osascript runner.
func WithRunner(r osa.Runner) Option {
	return func(s *Session) { s.runner = r }
}

// WithWorkspace replaces the workspace.
func WithWorkspace(ws Workspace) Option {
	return func(s *Session) { s.ws = ws }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession returns a Session for cfg. A nil cfg reads the environment.
func NewSession(cfg *Config, opts ...Option) *Session {
	if cfg == nil {
		cfg = NewConfig().FromEnv()
	}
	s := &Session{cfg: *cfg, version: system.Current}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		lo := logging.FromEnv()
		lo.Debug = lo.Debug || s.cfg.Debug
		s.logger = logging.New(lo)
	}
	if s.runner == nil {
		s.runner = &osa.CLIRunner{
			Path:    s.cfg.Osascript,
			Timeout: s.cfg.scriptTimeout(),
			Logger:  s.logger,
		}
	}
	if s.ws == nil {
		s.ws = workspace.New(s.logger)
	}
	return s
}

// Config returns a copy of the session configuration.
func (s *Session) Config() Config { return s.cfg }

// Runner returns the script runner.
func (s *Session) Runner() osa.Runner { return s.runner }

// Workspace returns the workspace.
func (s *Session) Workspace() Workspace { return s.ws }

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// RunJXA runs a JavaScript for Automation function body, which should end
// in a return statement, and decodes its result.
func (s *Session) RunJXA(ctx context.Context, body string, args ...string) (Value, error) {
	return s.evalArgs(ctx, "run JXA", "", body, args)
}

// RunAppleScript runs an AppleScript program and returns its output.
func (s *Session) RunAppleScript(ctx context.Context, source string, args ...string) (string, error) {
	out, err := osa.RunAppleScript(ctx, s.runner, source, args...)
	if err != nil {
		return "", wrap("run AppleScript", "", err)
	}
	return out, nil
}

// OpenURL opens a URL with its default handler.
func (s *Session) OpenURL(ctx context.Context, rawURL string) error {
	s.logger.Debug("xa: open url", "url", rawURL)
	return wrap("open "+rawURL, "", s.ws.OpenURL(ctx, rawURL))
}

// Object returns a wrapper for an arbitrary specifier.
func (s *Session) Object(spec Specifier) *Object {
	return &Object{sess: s, spec: spec}
}

func (s *Session) eval(ctx context.Context, op, app, body string) (Value, error) {
	return s.evalArgs(ctx, op, app, body, nil)
}

func (s *Session) evalArgs(ctx context.Context, op, app, body string, args []string) (Value, error) {
	raw, err := osa.RunJXA(ctx, s.runner, body, args...)
	if err != nil {
		return Null, wrap(op, app, err)
	}
	v, err := decodeValue(raw, s)
	if err != nil {
		return Null, wrap(op, app, err)
	}
	return v, nil
}
