// Package xatest provides a fake workspace and a ready-made Session for
// testing code built on xa without a window server.
package xatest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tmc/xa"
	"github.com/tmc/xa/osa/osatest"
)

// Workspace is an in-memory xa.Workspace. Every application name can be
// located at /Applications/<name>.app, registered bundle ids resolve to
// their adapter's name, and launching adds the application to the running
// list.
type Workspace struct {
	mu      sync.Mutex
	running []xa.AppInfo
	nextPID int

	// Front is reported as the frontmost application.
	Front xa.AppInfo
	// WindowList is reported by Windows.
	WindowList []xa.WindowInfo

	Launched   []string
	Opened     []string
	Activated  []int
	Hidden     []int
	Unhidden   []int
	Terminated []int
}

// NewWorkspace returns a workspace with apps already running.
func NewWorkspace(apps ...xa.AppInfo) *Workspace {
	return &Workspace{running: apps, nextPID: 1000}
}

func (w *Workspace) RunningApplications(ctx context.Context) ([]xa.AppInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]xa.AppInfo(nil), w.running...), nil
}

func (w *Workspace) FrontmostApplication(ctx context.Context) (xa.AppInfo, error) {
	return w.Front, nil
}

func (w *Workspace) Windows(ctx context.Context, onscreenOnly bool) ([]xa.WindowInfo, error) {
	return w.WindowList, nil
}

func (w *Workspace) LocateApplication(ctx context.Context, name string) (string, error) {
	if name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("xatest: cannot locate %q", name)
	}
	if a, ok := xa.Lookup(name); ok {
		name = a.Name
	}
	return "/Applications/" + name + ".app", nil
}

func (w *Workspace) ApplicationPaths(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (w *Workspace) Launch(ctx context.Context, path string, opts xa.LaunchOptions) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextPID++
	w.Launched = append(w.Launched, path)
	name := strings.TrimSuffix(filepath.Base(path), ".app")
	var bundleID string
	if a, ok := xa.Lookup(name); ok {
		bundleID = a.BundleID
	}
	w.running = append(w.running, xa.AppInfo{Name: name, BundleID: bundleID, Path: path, PID: w.nextPID, Hidden: opts.Hide, Active: opts.Activate})
	return w.nextPID, nil
}

func (w *Workspace) OpenURL(ctx context.Context, rawURL string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Opened = append(w.Opened, rawURL)
	return nil
}

func (w *Workspace) Activate(ctx context.Context, pid int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Activated = append(w.Activated, pid)
	return nil
}

func (w *Workspace) Hide(ctx context.Context, pid int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Hidden = append(w.Hidden, pid)
	return nil
}

func (w *Workspace) Unhide(ctx context.Context, pid int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Unhidden = append(w.Unhidden, pid)
	return nil
}

func (w *Workspace) Terminate(ctx context.Context, pid int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Terminated = append(w.Terminated, pid)
	for i, a := range w.running {
		if a.PID == pid {
			w.running = append(w.running[:i], w.running[i+1:]...)
			break
		}
	}
	return nil
}

func (w *Workspace) WaitForExit(ctx context.Context, pid int) error {
	return nil
}

// NewSession returns a session whose scripts go to a fresh osatest.Runner
// and whose workspace already runs apps.
func NewSession(apps ...xa.AppInfo) (*xa.Session, *osatest.Runner, *Workspace) {
	r := osatest.New()
	ws := NewWorkspace(apps...)
	cfg := xa.NewConfig().WithPollInterval(1)
	return xa.NewSession(cfg, xa.WithRunner(r), xa.WithWorkspace(ws)), r, ws
}

// Running returns an AppInfo for a running application.
func Running(name, bundleID string, pid int) xa.AppInfo {
	return xa.AppInfo{Name: name, BundleID: bundleID, Path: "/Applications/" + name + ".app", PID: pid}
}
