// Package systemevents scripts System Events: processes, their user
// interface elements, menus and synthesized keystrokes.
//
// UI elements are found by role, title and description rather than by
// their position in the element tree, which changes between releases.
package systemevents

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/xa"
	"github.com/tmc/xa/keyboard"
)

const (
	Name     = "System Events"
	BundleID = "com.apple.systemevents"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/systemevents", Aliases: []string{"systemevents"}})
}

// Application is System Events.
type Application struct {
	*xa.Application
}

// Open returns System Events, launching it hidden when it is not running.
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

// Processes returns the running processes System Events can see.
func (a *Application) Processes() *xa.List[*Process] {
	return xa.NewList(a.Object, "processes", newProcess)
}

// Process returns the process with the given name.
func (a *Application) Process(name string) *Process {
	return a.Processes().ByName(name)
}

// FrontmostProcess returns the frontmost process.
func (a *Application) FrontmostProcess(ctx context.Context) (*Process, error) {
	return a.Processes().By(ctx, "frontmost", true)
}

// Keystroke types text into the frontmost process, holding modifiers.
func (a *Application) Keystroke(ctx context.Context, text string, modifiers keyboard.Flags) error {
	_, err := a.Invoke(ctx, "keystroke", text, using(modifiers))
	return err
}

// KeyCode presses a virtual key in the frontmost process.
func (a *Application) KeyCode(ctx context.Context, code uint16, modifiers keyboard.Flags) error {
	_, err := a.Invoke(ctx, "keyCode", int(code), using(modifiers))
	return err
}

// Press presses a key combination such as "cmd+shift+s".
func (a *Application) Press(ctx context.Context, combo string) error {
	c, err := keyboard.Parse(combo)
	if err != nil {
		return err
	}
	return a.KeyCode(ctx, c.Code, c.Flags)
}

var modifierNames = []struct {
	flag keyboard.Flags
	name string
}{
	{keyboard.Command, "command down"},
	{keyboard.Control, "control down"},
	{keyboard.Alternate, "option down"},
	{keyboard.Shift, "shift down"},
}

func using(f keyboard.Flags) map[string]any {
	var mods []string
	for _, m := range modifierNames {
		if f&m.flag != 0 {
			mods = append(mods, m.name)
		}
	}
	if len(mods) == 0 {
		return nil
	}
	return map[string]any{"using": mods}
}

// Process is an application process.
type Process struct {
	*UIElement
}

func newProcess(o *xa.Object) *Process { return &Process{UIElement: newElement(o)} }

func (p *Process) BundleID(ctx context.Context) (string, error) { return p.GetString(ctx, "bundleIdentifier") }
func (p *Process) PID(ctx context.Context) (int, error)         { return p.GetInt(ctx, "unixId") }
func (p *Process) Frontmost(ctx context.Context) (bool, error)  { return p.GetBool(ctx, "frontmost") }
func (p *Process) Visible(ctx context.Context) (bool, error)    { return p.GetBool(ctx, "visible") }
func (p *Process) Background(ctx context.Context) (bool, error) { return p.GetBool(ctx, "backgroundOnly") }

func (p *Process) SetFrontmost(ctx context.Context, v bool) error { return p.Set(ctx, "frontmost", v) }
func (p *Process) SetVisible(ctx context.Context, v bool) error   { return p.Set(ctx, "visible", v) }

// Windows returns the process's windows.
func (p *Process) Windows() *xa.List[*UIElement] { return p.elements("windows") }

// MenuItem returns the menu item reached by following names from the menu
// bar, e.g. MenuItem("File", "Export", "PDF").
func (p *Process) MenuItem(path ...string) (*UIElement, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("systemevents: menu path %q needs a menu and an item", strings.Join(path, " > "))
	}
	o := p.Elements("menuBars").At(0).Elements("menuBarItems").ByName(path[0])
	for _, name := range path[1:] {
		o = o.Elements("menus").At(0).Elements("menuItems").ByName(name)
	}
	return newElement(o), nil
}

// ClickMenuItem clicks the menu item at path.
func (p *Process) ClickMenuItem(ctx context.Context, path ...string) error {
	item, err := p.MenuItem(path...)
	if err != nil {
		return err
	}
	return item.Click(ctx)
}
