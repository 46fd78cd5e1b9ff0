// Package finder scripts the Finder: the selection, containers such as the
// desktop and trash, items addressed by path, and Finder windows.
package finder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/xa"
)

const (
	Name     = "Finder"
	BundleID = "com.apple.finder"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/finder"})
}

// Application is the Finder.
type Application struct {
	*xa.Application
}

// Open returns the Finder. The Finder is always running, so this normally
// attaches.
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

// Windows returns the Finder windows.
func (a *Application) Windows() *xa.List[*Window] {
	return xa.NewList(a.Object, "finderWindows", newWindow)
}

// FrontWindow returns the frontmost Finder window.
func (a *Application) FrontWindow() *Window {
	return a.Windows().First()
}

func (a *Application) Desktop() *Item     { return newItem(a.Element("desktop")) }
func (a *Application) Trash() *Item       { return newItem(a.Element("trash")) }
func (a *Application) Home() *Item        { return newItem(a.Element("home")) }
func (a *Application) StartupDisk() *Item { return newItem(a.Element("startupDisk")) }

// Disks returns the mounted volumes.
func (a *Application) Disks() *xa.List[*Item] {
	return xa.NewList(a.Object, "disks", newItem)
}

// Selection returns the selected items. It is empty when nothing is
// selected.
func (a *Application) Selection(ctx context.Context) ([]*Item, error) {
	v, err := a.Eval(ctx, "get selection", "return [].concat("+a.JS()+".selection());")
	if err != nil {
		return nil, err
	}
	return items(v), nil
}

// InsertionLocation returns the container a new folder would be created
// in, normally the target of the front window.
func (a *Application) InsertionLocation(ctx context.Context) (*Item, error) {
	o, err := a.GetObject(ctx, "insertionLocation")
	if err != nil || o == nil {
		return nil, err
	}
	return newItem(o), nil
}

// ItemAt returns the item at an absolute path. Paths under /Volumes are
// addressed through their disk; everything else through the startup disk.
// The item is not resolved.
func (a *Application) ItemAt(path string) (*Item, error) {
	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("finder: %q is not an absolute path", path)
	}
	parts := strings.Split(strings.Trim(filepath.Clean(path), "/"), "/")
	o := a.StartupDisk().Object
	if len(parts) >= 2 && parts[0] == "Volumes" {
		o = a.Disks().ByName(parts[1]).Object
		parts = parts[2:]
	}
	if len(parts) == 1 && parts[0] == "" {
		return newItem(o), nil
	}
	for i, p := range parts {
		if i == len(parts)-1 {
			return newItem(o.Elements("items").ByName(p)), nil
		}
		o = o.Elements("folders").ByName(p)
	}
	return newItem(o), nil
}

// Directory returns one of the well-known folders of the current user.
func (a *Application) Directory(d Directory) *Item {
	switch d {
	case HomeDirectory:
		return a.Home()
	case DesktopDirectory:
		return a.Desktop()
	case TrashDirectory:
		return a.Trash()
	case ApplicationsDirectory:
		return newItem(a.StartupDisk().Folders().ByName("Applications").Object)
	}
	return newItem(a.Home().Folders().ByName(string(d)).Object)
}

// TempDirectory returns the user's temporary folder.
func (a *Application) TempDirectory() (*Item, error) {
	dir, err := filepath.EvalSymlinks(os.TempDir())
	if err != nil {
		return nil, err
	}
	return a.ItemAt(dir)
}

// Directory names a well-known folder.
type Directory string

const (
	HomeDirectory         Directory = "~"
	DesktopDirectory      Directory = "Desktop"
	TrashDirectory        Directory = ".Trash"
	DocumentsDirectory    Directory = "Documents"
	DownloadsDirectory    Directory = "Downloads"
	PicturesDirectory     Directory = "Pictures"
	MoviesDirectory       Directory = "Movies"
	MusicDirectory        Directory = "Music"
	PublicDirectory       Directory = "Public"
	ApplicationsDirectory Directory = "/Applications"
)

// Reveal shows the items at paths in Finder windows.
func (a *Application) Reveal(ctx context.Context, paths ...string) error {
	_, err := a.Invoke(ctx, "reveal", pathList(paths), nil)
	return err
}

// Select selects the items at paths after resolving symbolic links, which
// the Finder would otherwise select instead of their targets.
func (a *Application) Select(ctx context.Context, paths ...string) error {
	resolved := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.EvalSymlinks(p)
		if err != nil {
			return err
		}
		resolved[i] = r
	}
	_, err := a.Invoke(ctx, "select", pathList(resolved), nil)
	return err
}

// Recycle moves the items at paths to the trash.
func (a *Application) Recycle(ctx context.Context, paths ...string) error {
	_, err := a.Invoke(ctx, "delete", pathList(paths), nil)
	return err
}

// Delete removes the items at paths permanently, without the trash.
func (a *Application) Delete(ctx context.Context, paths ...string) error {
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return nil
}

// Duplicate copies the items at paths into their own folders and returns
// the copies.
func (a *Application) Duplicate(ctx context.Context, paths ...string) ([]*Item, error) {
	v, err := a.Eval(ctx, "duplicate", "return [].concat("+a.JS()+".duplicate("+pathsJS(paths)+"));")
	if err != nil {
		return nil, err
	}
	return items(v), nil
}

// EmptyTrash empties the trash.
func (a *Application) EmptyTrash(ctx context.Context) error {
	_, err := a.Invoke(ctx, "empty", a.Trash(), nil)
	return err
}

func pathList(paths []string) []any {
	out := make([]any, len(paths))
	for i, p := range paths {
		out[i] = xa.Path(p)
	}
	return out
}

func pathsJS(paths []string) string {
	js := make([]string, len(paths))
	for i, p := range paths {
		js[i] = xa.Path(p).JS()
	}
	return "[" + strings.Join(js, ", ") + "]"
}

func items(v xa.Value) []*Item {
	var out []*Item
	for _, e := range v.List() {
		if o := e.Object(); o != nil {
			out = append(out, newItem(o))
		}
	}
	return out
}
