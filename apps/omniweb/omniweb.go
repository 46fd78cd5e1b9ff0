// Package omniweb scripts OmniWeb: browser windows, tabs, workspaces and
// bookmarks.
package omniweb

import (
	"context"
	"strings"

	"github.com/tmc/xa"
)

const (
	Name     = "OmniWeb"
	BundleID = "com.omnigroup.OmniWeb5"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/omniweb"})
}

// Application is OmniWeb.
type Application struct {
	*xa.Application
}

// Open returns OmniWeb, launching it hidden when it is not running.
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

// Windows returns OmniWeb's windows.
func (a *Application) Windows() *xa.List[*Window] {
	return xa.NewList(a.Object, "windows", newWindow)
}

// Browsers returns the browser windows. A browser is the scriptable view
// of a window showing web pages.
func (a *Application) Browsers() *xa.List[*Browser] {
	return xa.NewList(a.Object, "browsers", newBrowser)
}

// FrontBrowser returns the frontmost browser window.
func (a *Application) FrontBrowser() *Browser { return a.Browsers().First() }

func (a *Application) Workspaces() *xa.List[*Workspace] {
	return xa.NewList(a.Object, "workspaces", newWorkspace)
}
func (a *Application) BookmarksDocuments() *xa.List[*BookmarksDocument] {
	return xa.NewList(a.Object, "bookmarksDocuments", newBookmarksDocument)
}

func (a *Application) ActiveWorkspace() *Workspace { return newWorkspace(a.Element("activeWorkspace")) }

// PersonalBookmarks returns the user's bookmarks file.
func (a *Application) PersonalBookmarks() *BookmarksDocument {
	return newBookmarksDocument(a.Element("personalBookmarks"))
}

// Favorites returns the bookmark folder shown in the favorites bar.
func (a *Application) Favorites() *Bookmark { return newBookmark(a.Element("favorites")) }

func (a *Application) FullVersion(ctx context.Context) (string, error) {
	return a.GetString(ctx, "fullVersion")
}

func (a *Application) SetActiveWorkspace(ctx context.Context, w *Workspace) error {
	return a.Set(ctx, "activeWorkspace", w)
}

// OpenLocation opens a web address or a local file. Addresses without a
// scheme are opened over http; paths starting with / are opened as files.
func (a *Application) OpenLocation(ctx context.Context, location string) error {
	if strings.HasPrefix(location, "/") {
		return a.Application.Open(ctx, location)
	}
	if !strings.Contains(location, "://") {
		location = "http://" + location
	}
	_, err := a.Invoke(ctx, "getURL", location, nil)
	return err
}

// WindowIDs returns the ids of the open browser windows.
func (a *Application) WindowIDs(ctx context.Context) ([]int, error) {
	v, err := a.Invoke(ctx, "listWindows", nil, nil)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(v.List()))
	for _, id := range v.List() {
		out = append(out, int(id.Int()))
	}
	return out, nil
}

// NewBrowser opens a browser window showing address.
func (a *Application) NewBrowser(ctx context.Context, address string) (*Browser, error) {
	return a.Browsers().Push(ctx, "browser", map[string]any{"address": address})
}

// Window is an OmniWeb window.
type Window struct {
	*xa.Window
}

func newWindow(o *xa.Object) *Window { return &Window{Window: xa.AsWindow(o)} }

// Document returns the document shown in the window.
func (w *Window) Document() *Document { return newDocument(w.Element("document")) }

// Document is a saved page or bookmarks file.
type Document struct {
	*xa.Object
}

func newDocument(o *xa.Object) *Document { return &Document{Object: o} }

func (d *Document) Name(ctx context.Context) (string, error)   { return d.GetString(ctx, "name") }
func (d *Document) Modified(ctx context.Context) (bool, error) { return d.GetBool(ctx, "modified") }
func (d *Document) Path(ctx context.Context) (string, error)   { return d.GetString(ctx, "path") }

// Workspace is a named set of browser windows.
type Workspace struct {
	*xa.Object
}

func newWorkspace(o *xa.Object) *Workspace { return &Workspace{Object: o} }

func (w *Workspace) Name(ctx context.Context) (string, error)    { return w.GetString(ctx, "name") }
func (w *Workspace) Autosaves(ctx context.Context) (bool, error) { return w.GetBool(ctx, "autosaves") }

func (w *Workspace) SetName(ctx context.Context, name string) error { return w.Set(ctx, "name", name) }
func (w *Workspace) SetAutosaves(ctx context.Context, v bool) error { return w.Set(ctx, "autosaves", v) }

func (w *Workspace) Browsers() *xa.List[*Browser] {
	return xa.NewList(w.Object, "browsers", newBrowser)
}
