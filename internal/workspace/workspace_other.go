//go:build !darwin

package workspace

import "context"

func (w *Workspace) RunningApplications(ctx context.Context) ([]AppInfo, error) {
	return nil, ErrUnsupported
}

func (w *Workspace) FrontmostApplication(ctx context.Context) (AppInfo, error) {
	return AppInfo{}, ErrUnsupported
}

func (w *Workspace) Windows(ctx context.Context, onscreenOnly bool) ([]WindowInfo, error) {
	return nil, ErrUnsupported
}

func (w *Workspace) LocateApplication(ctx context.Context, name string) (string, error) {
	return "", ErrUnsupported
}

func (w *Workspace) Launch(ctx context.Context, path string, opts LaunchOptions) (int, error) {
	return 0, ErrUnsupported
}

func (w *Workspace) OpenURL(ctx context.Context, rawURL string) error { return ErrUnsupported }

func (w *Workspace) Activate(ctx context.Context, pid int) error  { return ErrUnsupported }
func (w *Workspace) Hide(ctx context.Context, pid int) error      { return ErrUnsupported }
func (w *Workspace) Unhide(ctx context.Context, pid int) error    { return ErrUnsupported }
func (w *Workspace) Terminate(ctx context.Context, pid int) error { return ErrUnsupported }

func (w *Workspace) WaitForExit(ctx context.Context, pid int) error { return ErrUnsupported }
