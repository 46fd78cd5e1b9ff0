//go:build darwin

package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/purego/objc"
)

// NSApplicationActivateIgnoringOtherApps
const activateIgnoringOtherApps = 1 << 1

// RunningApplications lists the applications known to NSWorkspace.
func (w *Workspace) RunningApplications(ctx context.Context) ([]AppInfo, error) {
	if err := initObjC(); err != nil {
		return nil, err
	}
	var apps []AppInfo
	withPool(func() {
		ws := objc.ID(clsNSWorkspace).Send(selSharedWorkspace)
		arrayEach(ws.Send(selRunningApps), func(app objc.ID) {
			apps = append(apps, appInfo(app))
		})
	})
	return apps, nil
}

// FrontmostApplication returns the application receiving key events.
func (w *Workspace) FrontmostApplication(ctx context.Context) (AppInfo, error) {
	if err := initObjC(); err != nil {
		return AppInfo{}, err
	}
	var (
		info AppInfo
		ok   bool
	)
	withPool(func() {
		ws := objc.ID(clsNSWorkspace).Send(selSharedWorkspace)
		if app := ws.Send(selFrontmostApp); app != 0 {
			info, ok = appInfo(app), true
		}
	})
	if !ok {
		return AppInfo{}, fmt.Errorf("no frontmost application")
	}
	return info, nil
}

func appInfo(app objc.ID) AppInfo {
	info := AppInfo{
		Name:     goString(app.Send(selLocalizedName)),
		BundleID: goString(app.Send(selBundleIdentifier)),
		Path:     urlPath(app.Send(selBundleURL)),
		PID:      int(objc.Send[int32](app, selProcessIdentifier)),
		Hidden:   objc.Send[bool](app, selIsHidden),
		Active:   objc.Send[bool](app, selIsActive),
	}
	if d := app.Send(selLaunchDate); d != 0 {
		secs := objc.Send[float64](d, selTimeIntervalSince)
		info.LaunchDate = time.Unix(0, int64(secs*float64(time.Second)))
	}
	return info
}

// withApp runs fn on the NSRunningApplication for pid.
func withApp(pid int, fn func(app objc.ID) bool) error {
	if err := initObjC(); err != nil {
		return err
	}
	var (
		found bool
		ok    bool
	)
	withPool(func() {
		app := objc.ID(clsNSRunningApplication).Send(selRunningAppWithPID, uintptr(pid))
		if app == 0 {
			return
		}
		found = true
		ok = fn(app)
	})
	if !found {
		return fmt.Errorf("no running application with pid %d", pid)
	}
	if !ok {
		return fmt.Errorf("application with pid %d refused the request", pid)
	}
	return nil
}

// Activate brings the application to the front.
func (w *Workspace) Activate(ctx context.Context, pid int) error {
	return withApp(pid, func(app objc.ID) bool {
		return objc.Send[bool](app, selActivateWithOpts, uintptr(activateIgnoringOtherApps))
	})
}

// Hide hides the application's windows.
func (w *Workspace) Hide(ctx context.Context, pid int) error {
	return withApp(pid, func(app objc.ID) bool {
		if objc.Send[bool](app, selIsHidden) {
			return true
		}
		return objc.Send[bool](app, selHide)
	})
}

// Unhide reveals the application's windows without activating it.
func (w *Workspace) Unhide(ctx context.Context, pid int) error {
	return withApp(pid, func(app objc.ID) bool {
		if !objc.Send[bool](app, selIsHidden) {
			return true
		}
		return objc.Send[bool](app, selUnhide)
	})
}

// Terminate asks the application to quit.
func (w *Workspace) Terminate(ctx context.Context, pid int) error {
	return withApp(pid, func(app objc.ID) bool {
		if objc.Send[bool](app, selIsTerminated) {
			return true
		}
		return objc.Send[bool](app, selTerminate)
	})
}
