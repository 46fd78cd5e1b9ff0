// Package terminal scripts Terminal: windows, tabs, settings sets and
// running commands.
package terminal

import (
	"context"
	"strings"
	"time"

	"github.com/tmc/xa"
)

const (
	Name     = "Terminal"
	BundleID = "com.apple.Terminal"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/terminal"})
}

// Application is Terminal.
type Application struct {
	*xa.Application
}

// Open returns Terminal, launching it hidden when it is not running.
func Open(ctx context.Context, sess *xa.Session) (*Application, error) {
	app, err := sess.Application(ctx, Name)
	if err != nil {
		return nil, err
	}
	return New(app), nil
}

// New wraps an application resolved elsewhere.
func New(app *xa.Application) *Application {
	return &Application{Application: app}
}

// Windows returns Terminal's windows.
func (a *Application) Windows() *xa.List[*Window] {
	return xa.NewList(a.Object, "windows", newWindow)
}

// FrontWindow returns the frontmost window.
func (a *Application) FrontWindow() *Window {
	return a.Windows().First()
}

// SettingsSets returns the profiles.
func (a *Application) SettingsSets() *xa.List[*Settings] {
	return xa.NewList(a.Object, "settingsSets", newSettings)
}

func (a *Application) DefaultSettings() *Settings { return newSettings(a.Element("defaultSettings")) }
func (a *Application) StartupSettings() *Settings { return newSettings(a.Element("startupSettings")) }

// DoScript runs command in a new window and returns the tab it runs in.
func (a *Application) DoScript(ctx context.Context, command string) (*Tab, error) {
	v, err := a.Invoke(ctx, "doScript", command, nil)
	if err != nil {
		return nil, err
	}
	if o := v.Object(); o != nil {
		return newTab(o), nil
	}
	return a.FrontWindow().SelectedTab(), nil
}

// Window is a Terminal window.
type Window struct {
	*xa.Window
}

func newWindow(o *xa.Object) *Window { return &Window{Window: xa.AsWindow(o)} }

func (w *Window) Frontmost(ctx context.Context) (bool, error) { return w.GetBool(ctx, "frontmost") }

// Tabs returns the window's tabs.
func (w *Window) Tabs() *xa.List[*Tab] {
	return xa.NewList(w.Object, "tabs", newTab)
}

// SelectedTab returns the tab shown in the window.
func (w *Window) SelectedTab() *Tab {
	return newTab(w.Element("selectedTab"))
}

// Tab is a Terminal tab and the shell session in it.
type Tab struct {
	*xa.Object
}

func newTab(o *xa.Object) *Tab { return &Tab{Object: o} }

func (t *Tab) Contents(ctx context.Context) (string, error)    { return t.GetString(ctx, "contents") }
func (t *Tab) History(ctx context.Context) (string, error)     { return t.GetString(ctx, "history") }
func (t *Tab) TTY(ctx context.Context) (string, error)         { return t.GetString(ctx, "tty") }
func (t *Tab) CustomTitle(ctx context.Context) (string, error) { return t.GetString(ctx, "customTitle") }
func (t *Tab) Busy(ctx context.Context) (bool, error)          { return t.GetBool(ctx, "busy") }
func (t *Tab) Selected(ctx context.Context) (bool, error)      { return t.GetBool(ctx, "selected") }
func (t *Tab) Rows(ctx context.Context) (int, error)           { return t.GetInt(ctx, "numberOfRows") }
func (t *Tab) Columns(ctx context.Context) (int, error)        { return t.GetInt(ctx, "numberOfColumns") }

func (t *Tab) SetCustomTitle(ctx context.Context, title string) error {
	return t.Set(ctx, "customTitle", title)
}
func (t *Tab) SetSelected(ctx context.Context, v bool) error { return t.Set(ctx, "selected", v) }

// Processes returns the names of the processes running in the tab.
func (t *Tab) Processes(ctx context.Context) ([]string, error) {
	v, err := t.Get(ctx, "processes")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range v.List() {
		out = append(out, p.Str())
	}
	return out, nil
}

// Settings returns the profile the tab uses.
func (t *Tab) Settings() *Settings { return newSettings(t.Element("currentSettings")) }

// SetSettings switches the tab to another profile.
func (t *Tab) SetSettings(ctx context.Context, s *Settings) error {
	return t.Set(ctx, "currentSettings", s.Object)
}

// DoScript runs command in the tab.
func (t *Tab) DoScript(ctx context.Context, command string) error {
	_, err := t.Invoke(ctx, "doScript", command, map[string]any{"in": t.Object})
	return err
}

// Wait polls until the tab is no longer busy.
func (t *Tab) Wait(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		every = 100 * time.Millisecond
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		busy, err := t.Busy(ctx)
		if err != nil || !busy {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Run runs command in the tab, waits for it to finish and returns the
// output it added to the tab's history.
func (t *Tab) Run(ctx context.Context, command string, every time.Duration) (string, error) {
	before, err := t.History(ctx)
	if err != nil {
		return "", err
	}
	if err := t.DoScript(ctx, command); err != nil {
		return "", err
	}
	if err := t.Wait(ctx, every); err != nil {
		return "", err
	}
	after, err := t.History(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(after, before), nil
}

// Settings is a Terminal profile.
type Settings struct {
	*xa.Object
}

func newSettings(o *xa.Object) *Settings { return &Settings{Object: o} }

func (s *Settings) ID(ctx context.Context) (int, error)          { return s.GetInt(ctx, "id") }
func (s *Settings) Name(ctx context.Context) (string, error)     { return s.GetString(ctx, "name") }
func (s *Settings) FontName(ctx context.Context) (string, error) { return s.GetString(ctx, "fontName") }
func (s *Settings) FontSize(ctx context.Context) (int, error)    { return s.GetInt(ctx, "fontSize") }
func (s *Settings) Rows(ctx context.Context) (int, error)        { return s.GetInt(ctx, "numberOfRows") }
func (s *Settings) Columns(ctx context.Context) (int, error)     { return s.GetInt(ctx, "numberOfColumns") }

// CleanCommands returns the processes that may run without Terminal asking
// before closing the tab.
func (s *Settings) CleanCommands(ctx context.Context) ([]string, error) {
	v, err := s.Get(ctx, "cleanCommands")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, c := range v.List() {
		out = append(out, c.Str())
	}
	return out, nil
}

func (s *Settings) SetFontName(ctx context.Context, name string) error { return s.Set(ctx, "fontName", name) }
func (s *Settings) SetFontSize(ctx context.Context, size int) error    { return s.Set(ctx, "fontSize", size) }
