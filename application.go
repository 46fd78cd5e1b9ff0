package xa

import (
	"context"
	"fmt"
)

// Application is a running scriptable application.
type Application struct {
	*Object
	info AppInfo
}

func (s *Session) attach(info AppInfo) *Application {
	name := info.Name
	if name == "" {
		name = info.BundleID
	}
	if name == "" {
		name = info.Path
	}
	return &Application{Object: s.Object(AppSpecifier(name)), info: info}
}

// Info returns what the workspace reported when the application was
// resolved.
func (a *Application) Info() AppInfo { return a.info }

// Name returns the application name.
func (a *Application) Name() string { return a.info.Name }

// BundleID returns the bundle identifier.
func (a *Application) BundleID() string { return a.info.BundleID }

// PID returns the process identifier.
func (a *Application) PID() int { return a.info.PID }

// Path returns the application bundle path.
func (a *Application) Path() string { return a.info.Path }

func (a *Application) op(verb string) string {
	return fmt.Sprintf("%s %s", verb, a.label())
}

func (a *Application) label() string {
	if a.info.Name != "" {
		return a.info.Name
	}
	return a.App()
}

// Activate brings the application to the front.
func (a *Application) Activate(ctx context.Context) error {
	return wrap(a.op("activate"), a.label(), a.sess.ws.Activate(ctx, a.info.PID))
}

// Hide hides the application.
func (a *Application) Hide(ctx context.Context) error {
	return wrap(a.op("hide"), a.label(), a.sess.ws.Hide(ctx, a.info.PID))
}

// Unhide shows a hidden application without activating it.
func (a *Application) Unhide(ctx context.Context) error {
	return wrap(a.op("unhide"), a.label(), a.sess.ws.Unhide(ctx, a.info.PID))
}

// Terminate asks the application to quit through the workspace.
func (a *Application) Terminate(ctx context.Context) error {
	return wrap(a.op("terminate"), a.label(), a.sess.ws.Terminate(ctx, a.info.PID))
}

// Quit sends the application a quit command.
func (a *Application) Quit(ctx context.Context) error {
	_, err := a.Call(ctx, "quit")
	return err
}

// WaitForExit blocks until the application process exits or ctx is done.
func (a *Application) WaitForExit(ctx context.Context) error {
	return wrap(a.op("wait for"), a.label(), a.sess.ws.WaitForExit(ctx, a.info.PID))
}

// Running asks the scripting layer whether the application is running.
func (a *Application) Running(ctx context.Context) (bool, error) {
	v, err := a.Eval(ctx, a.op("check"), "return "+a.spec.JS()+".running();")
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

// Frontmost reports whether the application is active.
func (a *Application) Frontmost(ctx context.Context) (bool, error) {
	return a.GetBool(ctx, "frontmost")
}

// Version returns the application version.
func (a *Application) Version(ctx context.Context) (string, error) {
	return a.GetString(ctx, "version")
}

// Open opens files in the application.
func (a *Application) Open(ctx context.Context, paths ...string) error {
	ps := make([]any, len(paths))
	for i, p := range paths {
		ps[i] = Path(p)
	}
	_, err := a.Invoke(ctx, "open", ps, nil)
	return err
}

// Windows returns the application's windows.
func (a *Application) Windows() *List[*Window] {
	return NewList(a.Object, "windows", newWindow)
}

// FrontWindow returns the frontmost window.
func (a *Application) FrontWindow() *Window {
	return a.Windows().First()
}

// Documents returns the application's documents.
func (a *Application) Documents() *List[*Object] {
	return a.Elements("documents")
}
