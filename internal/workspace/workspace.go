// Package workspace provides pure Go bindings for the parts of NSWorkspace,
// NSRunningApplication, LaunchServices and the CoreGraphics window list
// that xa needs to find, launch and manage applications. No cgo required.
package workspace

import (
	"errors"
	"log/slog"
	"time"

	"github.com/tmc/xa/internal/logging"
)

// ErrUnsupported is returned on platforms other than macOS.
var ErrUnsupported = errors.New("workspace: not supported on this platform")

// AppInfo describes a running application.
type AppInfo struct {
	Name       string    `json:"name" yaml:"name"`
	BundleID   string    `json:"bundle_id" yaml:"bundle_id"`
	Path       string    `json:"path" yaml:"path"`
	PID        int       `json:"pid" yaml:"pid"`
	Hidden     bool      `json:"hidden" yaml:"hidden"`
	Active     bool      `json:"active" yaml:"active"`
	LaunchDate time.Time `json:"launch_date,omitempty" yaml:"launch_date,omitempty"`
}

// WindowInfo describes an on-screen window from the window server.
type WindowInfo struct {
	ID        int     `json:"id" yaml:"id"`
	OwnerPID  int     `json:"owner_pid" yaml:"owner_pid"`
	OwnerName string  `json:"owner_name" yaml:"owner_name"`
	Name      string  `json:"name" yaml:"name"`
	Layer     int     `json:"layer" yaml:"layer"`
	OnScreen  bool    `json:"on_screen" yaml:"on_screen"`
	Alpha     float64 `json:"alpha" yaml:"alpha"`
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
}

// Record returns the window as a property record keyed by the window
// server's names, for predicate evaluation.
func (w WindowInfo) Record() map[string]any {
	onscreen := 0
	if w.OnScreen {
		onscreen = 1
	}
	return map[string]any{
		"kCGWindowNumber":     w.ID,
		"kCGWindowOwnerPID":   w.OwnerPID,
		"kCGWindowOwnerName":  w.OwnerName,
		"kCGWindowName":       w.Name,
		"kCGWindowLayer":      w.Layer,
		"kCGWindowIsOnscreen": onscreen,
		"kCGWindowAlpha":      w.Alpha,
	}
}

// LaunchOptions controls how an application is launched.
type LaunchOptions struct {
	// Activate brings the application to the foreground.
	Activate bool
	// Hide launches the application hidden.
	Hide bool
	// NewInstance launches a new instance even if one is already running.
	NewInstance bool
	// Fresh launches without restoring windows from previous session.
	Fresh bool
	// Arguments are passed to the application as command-line arguments.
	Arguments []string
	// Environment is a map of environment variables to set for the launched app.
	Environment map[string]string
	// AddToRecents controls whether the opened item appears in Recents.
	AddToRecents bool
}

// Workspace is the macOS workspace. Its methods are safe for concurrent use.
type Workspace struct {
	logger *slog.Logger
}

// New returns a Workspace that logs to logger, or discards logs when
// logger is nil.
func New(logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Workspace{logger: logger}
}
