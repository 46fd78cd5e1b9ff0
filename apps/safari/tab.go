package safari

import (
	"context"

	"github.com/tmc/xa"
)

// page holds what tabs and documents have in common.
type page struct {
	*xa.Object
}

func (p page) URL(ctx context.Context) (string, error)    { return p.GetString(ctx, "url") }
func (p page) Name(ctx context.Context) (string, error)   { return p.GetString(ctx, "name") }
func (p page) Source(ctx context.Context) (string, error) { return p.GetString(ctx, "source") }
func (p page) Text(ctx context.Context) (string, error)   { return p.GetString(ctx, "text") }

// SetURL loads url.
func (p page) SetURL(ctx context.Context, url string) error { return p.Set(ctx, "url", url) }

// DoJavaScript runs script in the page.
func (p page) DoJavaScript(ctx context.Context, script string) (xa.Value, error) {
	return p.Invoke(ctx, "doJavaScript", script, map[string]any{"in": p.Object})
}

// Search searches the web for term in the page.
func (p page) Search(ctx context.Context, term string) error {
	_, err := p.Invoke(ctx, "searchTheWeb", nil, map[string]any{"in": p.Object, "for": term})
	return err
}

// AddToReadingList adds the page's URL to the reading list.
func (p page) AddToReadingList(ctx context.Context) error {
	url, err := p.URL(ctx)
	if err != nil {
		return err
	}
	_, err = p.Invoke(ctx, "addReadingListItem", url, nil)
	return err
}

// Email opens a mail draft containing the page.
func (p page) Email(ctx context.Context) error {
	_, err := p.Invoke(ctx, "emailContents", nil, map[string]any{"of": p.Object})
	return err
}

// Close closes the page.
func (p page) Close(ctx context.Context) error {
	_, err := p.Call(ctx, "close")
	return err
}

// Tab is a browser tab.
type Tab struct {
	page
}

func newTab(o *xa.Object) *Tab { return &Tab{page{o}} }

func (t *Tab) Index(ctx context.Context) (int, error)    { return t.GetInt(ctx, "index") }
func (t *Tab) Visible(ctx context.Context) (bool, error) { return t.GetBool(ctx, "visible") }

// Reload loads the tab's URL again.
func (t *Tab) Reload(ctx context.Context) error {
	_, err := t.Eval(ctx, "reload tab", "var t = "+t.JS()+";\nt.url = t.url();\nreturn null;")
	return err
}

// DuplicateTo opens the tab's URL in a new tab of w. The tab stays open.
func (t *Tab) DuplicateTo(ctx context.Context, w *Window) (*Tab, error) {
	url, err := t.URL(ctx)
	if err != nil {
		return nil, err
	}
	return w.NewTab(ctx, url)
}

// MoveTo opens the tab's URL in a new tab of w and closes the tab.
func (t *Tab) MoveTo(ctx context.Context, w *Window) (*Tab, error) {
	nt, err := t.DuplicateTo(ctx, w)
	if err != nil {
		return nil, err
	}
	if err := t.Close(ctx); err != nil {
		return nil, err
	}
	return nt, nil
}

// Document is a Safari document, the page shown in a window.
type Document struct {
	page
}

func newDocument(o *xa.Object) *Document { return &Document{page{o}} }

// Modified reports unsaved changes.
func (d *Document) Modified(ctx context.Context) (bool, error) { return d.GetBool(ctx, "modified") }

// Save saves the page as a web archive at path.
func (d *Document) Save(ctx context.Context, path string) error {
	_, err := d.Invoke(ctx, "save", d.Object, map[string]any{"in": xa.Path(path)})
	return err
}
