package omniweb

import (
	"context"
	"time"

	"github.com/tmc/xa"
)

// Browser is a browser window.
type Browser struct {
	*xa.Object
}

func newBrowser(o *xa.Object) *Browser { return &Browser{Object: o} }

func (b *Browser) Address(ctx context.Context) (string, error) { return b.GetString(ctx, "address") }
func (b *Browser) IsBusy(ctx context.Context) (bool, error)    { return b.GetBool(ctx, "isBusy") }
func (b *Browser) HasTabs(ctx context.Context) (bool, error)   { return b.GetBool(ctx, "hasTabs") }
func (b *Browser) HasToolbar(ctx context.Context) (bool, error) {
	return b.GetBool(ctx, "hasToolbar")
}
func (b *Browser) HasFavorites(ctx context.Context) (bool, error) {
	return b.GetBool(ctx, "hasFavorites")
}
func (b *Browser) ShowsAddress(ctx context.Context) (bool, error) {
	return b.GetBool(ctx, "showsAddress")
}

// SetAddress loads address in the active tab.
func (b *Browser) SetAddress(ctx context.Context, address string) error {
	return b.Set(ctx, "address", address)
}
func (b *Browser) SetHasTabs(ctx context.Context, v bool) error    { return b.Set(ctx, "hasTabs", v) }
func (b *Browser) SetHasToolbar(ctx context.Context, v bool) error { return b.Set(ctx, "hasToolbar", v) }
func (b *Browser) SetHasFavorites(ctx context.Context, v bool) error {
	return b.Set(ctx, "hasFavorites", v)
}
func (b *Browser) SetShowsAddress(ctx context.Context, v bool) error {
	return b.Set(ctx, "showsAddress", v)
}

func (b *Browser) Tabs() *xa.List[*Tab] { return xa.NewList(b.Object, "tabs", newTab) }

// ActiveTab returns the tab the browser shows.
func (b *Browser) ActiveTab() *Tab { return newTab(b.Element("activeTab")) }

// SetActiveTab switches the browser to tab.
func (b *Browser) SetActiveTab(ctx context.Context, tab *Tab) error {
	return b.Set(ctx, "activeTab", tab)
}

// NewTab opens address in a new tab at the end of the browser.
func (b *Browser) NewTab(ctx context.Context, address string) (*Tab, error) {
	return b.Tabs().Push(ctx, "tab", map[string]any{"address": address})
}

// Tab is a browser tab.
type Tab struct {
	*xa.Object
}

func newTab(o *xa.Object) *Tab { return &Tab{Object: o} }

func (t *Tab) Address(ctx context.Context) (string, error) { return t.GetString(ctx, "address") }
func (t *Tab) Title(ctx context.Context) (string, error)   { return t.GetString(ctx, "title") }
func (t *Tab) Source(ctx context.Context) (string, error)  { return t.GetString(ctx, "source") }
func (t *Tab) IsBusy(ctx context.Context) (bool, error)    { return t.GetBool(ctx, "isBusy") }

// SetAddress loads address in the tab.
func (t *Tab) SetAddress(ctx context.Context, address string) error {
	return t.Set(ctx, "address", address)
}

// BookmarksDocument is a bookmarks file.
type BookmarksDocument struct {
	*xa.Object
}

func newBookmarksDocument(o *xa.Object) *BookmarksDocument { return &BookmarksDocument{Object: o} }

func (d *BookmarksDocument) Address(ctx context.Context) (string, error) {
	return d.GetString(ctx, "address")
}
func (d *BookmarksDocument) IsReadOnly(ctx context.Context) (bool, error) {
	return d.GetBool(ctx, "isReadOnly")
}

func (d *BookmarksDocument) Bookmarks() *xa.List[*Bookmark] {
	return xa.NewList(d.Object, "bookmarks", newBookmark)
}

// NewBookmark adds a bookmark at the end of the file.
func (d *BookmarksDocument) NewBookmark(ctx context.Context, name, address string) (*Bookmark, error) {
	return d.Bookmarks().Push(ctx, "bookmark", map[string]any{"name": name, "address": address})
}

// Bookmark is a bookmark or, when it holds other bookmarks, a bookmark
// folder.
type Bookmark struct {
	*xa.Object
}

func newBookmark(o *xa.Object) *Bookmark { return &Bookmark{Object: o} }

func (b *Bookmark) Name(ctx context.Context) (string, error)      { return b.GetString(ctx, "name") }
func (b *Bookmark) Address(ctx context.Context) (string, error)   { return b.GetString(ctx, "address") }
func (b *Bookmark) Note(ctx context.Context) (string, error)      { return b.GetString(ctx, "note") }
func (b *Bookmark) IsNew(ctx context.Context) (bool, error)       { return b.GetBool(ctx, "isNew") }
func (b *Bookmark) IsReachable(ctx context.Context) (bool, error) { return b.GetBool(ctx, "isReachable") }

// CheckInterval returns how often OmniWeb checks the page for changes.
func (b *Bookmark) CheckInterval(ctx context.Context) (time.Duration, error) {
	secs, err := b.GetInt(ctx, "checkInterval")
	return time.Duration(secs) * time.Second, err
}

func (b *Bookmark) LastChecked(ctx context.Context) (time.Time, error) {
	return b.GetTime(ctx, "lastCheckedDate")
}

func (b *Bookmark) SetName(ctx context.Context, name string) error { return b.Set(ctx, "name", name) }
func (b *Bookmark) SetAddress(ctx context.Context, address string) error {
	return b.Set(ctx, "address", address)
}
func (b *Bookmark) SetNote(ctx context.Context, note string) error { return b.Set(ctx, "note", note) }
func (b *Bookmark) SetCheckInterval(ctx context.Context, d time.Duration) error {
	return b.Set(ctx, "checkInterval", int(d/time.Second))
}

// Bookmarks returns the bookmarks inside a bookmark folder.
func (b *Bookmark) Bookmarks() *xa.List[*Bookmark] {
	return xa.NewList(b.Object, "bookmarks", newBookmark)
}
