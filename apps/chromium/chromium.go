// Package chromium scripts the Chromium family of browsers, which share
// one scripting dictionary: Google Chrome, Chromium, Brave, Microsoft Edge,
// Opera, Vivaldi, Blisk and Iridium.
package chromium

import (
	"context"
	"strings"

	"github.com/tmc/xa"
)

// Browser identifies a Chromium-based browser.
type Browser struct {
	Name     string
	BundleID string
}

var (
	Chrome   = Browser{"Google Chrome", "com.google.Chrome"}
	Chromium = Browser{"Chromium", "org.chromium.Chromium"}
	Brave    = Browser{"Brave Browser", "com.brave.Browser"}
	Edge     = Browser{"Microsoft Edge", "com.microsoft.edgemac"}
	Opera    = Browser{"Opera", "com.operasoftware.Opera"}
	Vivaldi  = Browser{"Vivaldi", "com.vivaldi.Vivaldi"}
	Blisk    = Browser{"Blisk", "org.blisk.Blisk"}
	Iridium  = Browser{"Iridium", "de.iridiumbrowser"}
)

// Browsers lists every supported browser.
var Browsers = []Browser{Chrome, Chromium, Brave, Edge, Opera, Vivaldi, Blisk, Iridium}

func init() {
	for _, b := range Browsers {
		var aliases []string
		switch b {
		case Chrome:
			aliases = []string{"chrome"}
		case Brave:
			aliases = []string{"brave"}
		case Edge:
			aliases = []string{"edge"}
		}
		xa.Register(xa.Adapter{Name: b.Name, BundleID: b.BundleID, Package: "github.com/tmc/xa/apps/chromium", Aliases: aliases})
	}
}

// Lookup finds a browser by name, alias or bundle id.
func Lookup(name string) (Browser, bool) {
	a, ok := xa.Lookup(name)
	if !ok {
		return Browser{}, false
	}
	for _, b := range Browsers {
		if b.BundleID == a.BundleID {
			return b, true
		}
	}
	return Browser{}, false
}

// Application is a running Chromium-based browser.
type Application struct {
	*xa.Application
}

// Open returns browser b, launching it hidden when it is not running.
func Open(ctx context.Context, sess *xa.Session, b Browser) (*Application, error) {
	app, err := sess.Application(ctx, b.Name)
	if err != nil {
		return nil, err
	}
	return New(app), nil
}

// New wraps an application resolved elsewhere.
func New(app *xa.Application) *Application {
	return &Application{Application: app}
}

// Windows returns the browser windows.
func (a *Application) Windows() *xa.List[*Window] {
	return xa.NewList(a.Object, "windows", newWindow)
}

// FrontWindow returns the frontmost window.
func (a *Application) FrontWindow() *Window {
	return a.Windows().First()
}

// NewWindow opens a window, in incognito mode if asked.
func (a *Application) NewWindow(ctx context.Context, incognito bool) (*Window, error) {
	props := map[string]any{}
	if incognito {
		props["mode"] = "incognito"
	}
	return a.Windows().Push(ctx, "window", props)
}

// OpenLocation opens url in a new tab of the frontmost window.
func (a *Application) OpenLocation(ctx context.Context, url string) (*Tab, error) {
	if !strings.Contains(url, "://") {
		url = "https://" + url
	}
	return a.FrontWindow().NewTab(ctx, url)
}

// BookmarksBar returns the bookmarks bar folder.
func (a *Application) BookmarksBar() *BookmarkFolder {
	return newBookmarkFolder(a.Element("bookmarksBar"))
}

// OtherBookmarks returns the other bookmarks folder.
func (a *Application) OtherBookmarks() *BookmarkFolder {
	return newBookmarkFolder(a.Element("otherBookmarks"))
}

// BookmarkFolders returns the top-level bookmark folders.
func (a *Application) BookmarkFolders() *xa.List[*BookmarkFolder] {
	return xa.NewList(a.Object, "bookmarkFolders", newBookmarkFolder)
}

// Window is a browser window.
type Window struct {
	*xa.Window
}

func newWindow(o *xa.Object) *Window { return &Window{Window: xa.AsWindow(o)} }

// Mode is "normal" or "incognito".
func (w *Window) Mode(ctx context.Context) (string, error) { return w.GetString(ctx, "mode") }

// GivenName is the name given to the window by the user.
func (w *Window) GivenName(ctx context.Context) (string, error) {
	return w.GetString(ctx, "givenName")
}

// ActiveTabIndex returns the one-based index of the active tab.
func (w *Window) ActiveTabIndex(ctx context.Context) (int, error) {
	return w.GetInt(ctx, "activeTabIndex")
}

// SetActiveTabIndex switches to the tab at the one-based index i.
func (w *Window) SetActiveTabIndex(ctx context.Context, i int) error {
	return w.Set(ctx, "activeTabIndex", i)
}

// ActiveTab returns the active tab.
func (w *Window) ActiveTab() *Tab {
	return newTab(w.Element("activeTab"))
}

// Tabs returns the window's tabs.
func (w *Window) Tabs() *xa.List[*Tab] {
	return xa.NewList(w.Object, "tabs", newTab)
}

// NewTab opens url in a new tab at the end of the window.
func (w *Window) NewTab(ctx context.Context, url string) (*Tab, error) {
	return w.Tabs().Push(ctx, "tab", map[string]any{"url": url})
}
