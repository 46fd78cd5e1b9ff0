// Package safari scripts Safari: windows, tabs, documents, searches, the
// reading list and JavaScript in pages.
package safari

import (
	"context"
	"strings"

	"github.com/tmc/xa"
)

const (
	Name     = "Safari"
	BundleID = "com.apple.Safari"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/safari"})
}

// Application is Safari.
type Application struct {
	*xa.Application
}

// Open returns Safari, launching it hidden when it is not running.
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

// Windows returns Safari's windows.
func (a *Application) Windows() *xa.List[*Window] {
	return xa.NewList(a.Object, "windows", newWindow)
}

// FrontWindow returns the frontmost window.
func (a *Application) FrontWindow() *Window {
	return a.Windows().First()
}

// Documents returns the open documents.
func (a *Application) Documents() *xa.List[*Document] {
	return xa.NewList(a.Object, "documents", newDocument)
}

// CurrentDocument returns the document of the frontmost window's current
// tab.
func (a *Application) CurrentDocument() *Document {
	return a.Documents().First()
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
	_, err := a.Invoke(ctx, "openLocation", location, nil)
	return err
}

// NewDocument opens a new window showing url.
func (a *Application) NewDocument(ctx context.Context, url string) (*Document, error) {
	return a.Documents().Push(ctx, "document", map[string]any{"url": url})
}

// Search searches the web for term in the frontmost window with the
// default search engine.
func (a *Application) Search(ctx context.Context, term string) error {
	_, err := a.Invoke(ctx, "searchTheWeb", nil, map[string]any{"in": a.FrontWindow().CurrentTab(), "for": term})
	return err
}

// SearchInTab searches the web for term in tab.
func (a *Application) SearchInTab(ctx context.Context, tab *Tab, term string) error {
	_, err := a.Invoke(ctx, "searchTheWeb", nil, map[string]any{"in": tab, "for": term})
	return err
}

// DoJavaScript runs script in tab and returns its result. A nil tab runs
// it in the current tab of the frontmost window.
func (a *Application) DoJavaScript(ctx context.Context, script string, tab *Tab) (xa.Value, error) {
	if tab == nil {
		tab = a.FrontWindow().CurrentTab()
	}
	return a.Invoke(ctx, "doJavaScript", script, map[string]any{"in": tab})
}

// ShowBookmarks shows the bookmarks sidebar.
func (a *Application) ShowBookmarks(ctx context.Context) error {
	_, err := a.Invoke(ctx, "showBookmarks", nil, nil)
	return err
}

// AddToReadingList adds url to the reading list. Title and preview may be
// empty.
func (a *Application) AddToReadingList(ctx context.Context, url, title, preview string) error {
	params := map[string]any{}
	if title != "" {
		params["withTitle"] = title
	}
	if preview != "" {
		params["andPreviewText"] = preview
	}
	_, err := a.Invoke(ctx, "addReadingListItem", url, params)
	return err
}

// EmailContents opens a mail draft containing the page shown by item, a
// *Tab or *Document.
func (a *Application) EmailContents(ctx context.Context, item any) error {
	_, err := a.Invoke(ctx, "emailContents", nil, map[string]any{"of": item})
	return err
}
