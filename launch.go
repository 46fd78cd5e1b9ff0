package xa

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/tmc/xa/internal/workspace"
	"github.com/tmc/xa/predicate"
)

// Application returns the named application, launching it hidden in the
// background when it is not running. name may be an application name, a
// bundle identifier or the path of an application bundle. Asking twice for
// a running application never launches a second copy.
func (s *Session) Application(ctx context.Context, name string) (*Application, error) {
	return s.resolve(ctx, name, false)
}

// LaunchApplication is like Application but also activates the
// application.
func (s *Session) LaunchApplication(ctx context.Context, name string) (*Application, error) {
	return s.resolve(ctx, name, true)
}

// CurrentApplication returns the frontmost application.
func (s *Session) CurrentApplication(ctx context.Context) (*Application, error) {
	info, err := s.ws.FrontmostApplication(ctx)
	if err != nil {
		return nil, wrap("get frontmost application", "", unsupportedErr(err))
	}
	return s.attach(info), nil
}

// onscreenWindows selects the normal-layer windows on screen.
var onscreenWindows = predicate.New().
	AddEqual("kCGWindowIsOnscreen", 1).
	AddEqual("kCGWindowLayer", 0)

// RunningApplications returns the applications that own a window on
// screen, in window order from front to back.
func (s *Session) RunningApplications(ctx context.Context) ([]*Application, error) {
	const op = "list running applications"
	windows, err := s.ws.Windows(ctx, true)
	if err != nil {
		return nil, wrap(op, "", unsupportedErr(err))
	}
	var pids []int
	seen := map[int]bool{}
	for _, w := range windows {
		ok, err := onscreenWindows.Evaluate(w.Record())
		if err != nil {
			return nil, wrap(op, "", err)
		}
		if ok && !seen[w.OwnerPID] {
			seen[w.OwnerPID] = true
			pids = append(pids, w.OwnerPID)
		}
	}

	running, err := s.ws.RunningApplications(ctx)
	if err != nil {
		return nil, wrap(op, "", unsupportedErr(err))
	}
	byPID := make(map[int]AppInfo, len(running))
	for _, info := range running {
		byPID[info.PID] = info
	}
	apps := make([]*Application, 0, len(pids))
	for _, pid := range pids {
		if info, ok := byPID[pid]; ok {
			apps = append(apps, s.attach(info))
		}
	}
	return apps, nil
}

func (s *Session) resolve(ctx context.Context, name string, activate bool) (*Application, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &Error{Op: "open application", Err: errors.New("empty application name")}
	}
	name = s.canonicalName(ctx, name)
	op := "open " + name

	running, err := s.ws.RunningApplications(ctx)
	if err != nil {
		return nil, wrap(op, "", unsupportedErr(err))
	}
	if info, ok := findRunning(running, name); ok {
		s.logger.Debug("xa: attach", "name", info.Name, "pid", info.PID)
		if activate {
			if err := s.ws.Activate(ctx, info.PID); err != nil {
				return nil, wrap("activate "+name, "", err)
			}
		}
		return s.attach(info), nil
	}

	path, err := s.locate(ctx, name)
	if err != nil {
		return nil, err
	}
	visible := activate || s.cfg.LaunchVisible
	opts := LaunchOptions{Activate: visible, Hide: !visible}
	pid, err := s.ws.Launch(ctx, path, opts)
	if err != nil {
		return nil, wrap("launch "+name, "", unsupportedErr(err))
	}
	s.logger.Debug("xa: launched", "name", name, "path", path, "pid", pid, "visible", visible)

	info, err := s.waitRunning(ctx, pid, path)
	if err != nil {
		return nil, wrap("launch "+name, "", err)
	}
	return s.attach(info), nil
}

// canonicalName maps names that changed between macOS releases and the
// names of registered adapters onto what the workspace reports.
func (s *Session) canonicalName(ctx context.Context, name string) string {
	switch strings.ToLower(name) {
	case "system preferences", "system settings":
		if v, err := s.version(ctx); err == nil {
			return v.SettingsAppName()
		}
	}
	return name
}

func findRunning(apps []AppInfo, name string) (AppInfo, bool) {
	want := strings.TrimSuffix(name, ".app")
	var bundleID string
	if a, ok := Lookup(name); ok {
		bundleID = a.BundleID
	}
	for _, info := range apps {
		switch {
		case strings.EqualFold(info.Name, want),
			strings.EqualFold(info.BundleID, name),
			bundleID != "" && strings.EqualFold(info.BundleID, bundleID),
			info.Path != "" && info.Path == name,
			info.Path != "" && strings.EqualFold(strings.TrimSuffix(filepath.Base(info.Path), ".app"), want):
			return info, true
		}
	}
	return AppInfo{}, false
}

// locate finds the application bundle on disk, falling back to the
// Spotlight index and suggesting close names when nothing matches.
func (s *Session) locate(ctx context.Context, name string) (string, error) {
	if a, ok := Lookup(name); ok && a.BundleID != "" {
		if path, err := s.ws.LocateApplication(ctx, a.BundleID); err == nil && path != "" {
			return path, nil
		}
	}
	path, err := s.ws.LocateApplication(ctx, name)
	if err == nil && path != "" {
		return path, nil
	}
	if errors.Is(err, workspace.ErrUnsupported) {
		return "", wrap("open "+name, "", unsupportedErr(err))
	}

	paths, serr := s.ws.ApplicationPaths(ctx)
	if serr != nil {
		s.logger.Debug("xa: spotlight lookup failed", "error", serr)
	}
	if p, ok := workspace.MatchApplication(paths, name); ok {
		return p, nil
	}
	return "", &ApplicationNotFoundError{
		Name:        name,
		Suggestions: suggest(name, workspace.ApplicationNames(paths)),
	}
}

// waitRunning polls the workspace until the launched process shows up.
func (s *Session) waitRunning(ctx context.Context, pid int, path string) (AppInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.launchTimeout())
	defer cancel()

	ticker := time.NewTicker(s.cfg.pollInterval())
	defer ticker.Stop()
	for {
		apps, err := s.ws.RunningApplications(ctx)
		if err != nil {
			return AppInfo{}, err
		}
		for _, info := range apps {
			if (pid > 0 && info.PID == pid) || (path != "" && info.Path == path) {
				return info, nil
			}
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return AppInfo{}, fmt.Errorf("%s did not start within %v: %w", filepath.Base(path), s.cfg.launchTimeout(), ErrTimeout)
			}
			return AppInfo{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// suggest returns up to three names close to name.
func suggest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	lower := strings.ToLower(name)
	limit := max(2, len(name)/3)
	var hits []scored
	seen := map[string]bool{}
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		lc := strings.ToLower(c)
		d := levenshtein.ComputeDistance(lower, lc)
		if strings.Contains(lc, lower) && d > limit {
			d = limit
		}
		if d <= limit {
			hits = append(hits, scored{c, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})
	var out []string
	for i := 0; i < len(hits) && i < 3; i++ {
		out = append(out, hits[i].name)
	}
	return out
}

func unsupportedErr(err error) error {
	if errors.Is(err, workspace.ErrUnsupported) {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return err
}
