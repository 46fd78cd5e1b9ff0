package safari

import (
	"context"

	"github.com/tmc/xa"
)

// Window is a browser window.
type Window struct {
	*xa.Window
}

func newWindow(o *xa.Object) *Window { return &Window{Window: xa.AsWindow(o)} }

// Tabs returns the window's tabs.
func (w *Window) Tabs() *xa.List[*Tab] {
	return xa.NewList(w.Object, "tabs", newTab)
}

// CurrentTab returns the tab the window shows.
func (w *Window) CurrentTab() *Tab {
	return newTab(w.Element("currentTab"))
}

// SetCurrentTab switches the window to tab.
func (w *Window) SetCurrentTab(ctx context.Context, tab *Tab) error {
	return w.Set(ctx, "currentTab", tab)
}

// NewTab opens url in a new tab at the end of the window.
func (w *Window) NewTab(ctx context.Context, url string) (*Tab, error) {
	return w.Tabs().Push(ctx, "tab", map[string]any{"url": url})
}

// Document returns the document shown in the window.
func (w *Window) Document() *Document {
	return newDocument(w.Element("document"))
}
