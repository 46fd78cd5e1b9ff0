package chromium

import (
	"context"

	"github.com/tmc/xa"
)

// Tab is a browser tab.
type Tab struct {
	*xa.Object
}

func newTab(o *xa.Object) *Tab { return &Tab{Object: o} }

func (t *Tab) ID(ctx context.Context) (int, error)          { return t.GetInt(ctx, "id") }
func (t *Tab) Title(ctx context.Context) (string, error)    { return t.GetString(ctx, "title") }
func (t *Tab) URL(ctx context.Context) (string, error)      { return t.GetString(ctx, "url") }
func (t *Tab) Loading(ctx context.Context) (bool, error)    { return t.GetBool(ctx, "loading") }
func (t *Tab) SetURL(ctx context.Context, url string) error { return t.Set(ctx, "url", url) }

// command sends a browser command whose direct parameter is the tab.
func (t *Tab) command(ctx context.Context, name string) error {
	_, err := t.Invoke(ctx, name, t, nil)
	return err
}

func (t *Tab) Undo(ctx context.Context) error           { return t.command(ctx, "undo") }
func (t *Tab) Redo(ctx context.Context) error           { return t.command(ctx, "redo") }
func (t *Tab) CutSelection(ctx context.Context) error   { return t.command(ctx, "cutSelection") }
func (t *Tab) CopySelection(ctx context.Context) error  { return t.command(ctx, "copySelection") }
func (t *Tab) PasteSelection(ctx context.Context) error { return t.command(ctx, "pasteSelection") }
func (t *Tab) SelectAll(ctx context.Context) error      { return t.command(ctx, "selectAll") }
func (t *Tab) GoBack(ctx context.Context) error         { return t.command(ctx, "goBack") }
func (t *Tab) GoForward(ctx context.Context) error      { return t.command(ctx, "goForward") }
func (t *Tab) Reload(ctx context.Context) error         { return t.command(ctx, "reload") }
func (t *Tab) Stop(ctx context.Context) error           { return t.command(ctx, "stop") }
func (t *Tab) ViewSource(ctx context.Context) error     { return t.command(ctx, "viewSource") }
func (t *Tab) Close(ctx context.Context) error          { return t.command(ctx, "close") }

// Execute runs JavaScript in the tab and returns its result.
func (t *Tab) Execute(ctx context.Context, script string) (xa.Value, error) {
	return t.Invoke(ctx, "execute", t, map[string]any{"javascript": script})
}

// DuplicateTo opens the tab's URL in a new tab of w.
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

// BookmarkFolder is a folder of bookmarks.
type BookmarkFolder struct {
	*xa.Object
}

func newBookmarkFolder(o *xa.Object) *BookmarkFolder { return &BookmarkFolder{Object: o} }

func (f *BookmarkFolder) ID(ctx context.Context) (int, error)       { return f.GetInt(ctx, "id") }
func (f *BookmarkFolder) Title(ctx context.Context) (string, error) { return f.GetString(ctx, "title") }
func (f *BookmarkFolder) Index(ctx context.Context) (int, error)    { return f.GetInt(ctx, "index") }

// BookmarkFolders returns the folders inside f.
func (f *BookmarkFolder) BookmarkFolders() *xa.List[*BookmarkFolder] {
	return xa.NewList(f.Object, "bookmarkFolders", newBookmarkFolder)
}

// BookmarkItems returns the bookmarks inside f.
func (f *BookmarkFolder) BookmarkItems() *xa.List[*BookmarkItem] {
	return xa.NewList(f.Object, "bookmarkItems", newBookmarkItem)
}

// BookmarkItem is a bookmark.
type BookmarkItem struct {
	*xa.Object
}

func newBookmarkItem(o *xa.Object) *BookmarkItem { return &BookmarkItem{Object: o} }

func (b *BookmarkItem) ID(ctx context.Context) (int, error)       { return b.GetInt(ctx, "id") }
func (b *BookmarkItem) Title(ctx context.Context) (string, error) { return b.GetString(ctx, "title") }
func (b *BookmarkItem) URL(ctx context.Context) (string, error)   { return b.GetString(ctx, "url") }
func (b *BookmarkItem) Index(ctx context.Context) (int, error)    { return b.GetInt(ctx, "index") }
func (b *BookmarkItem) SetURL(ctx context.Context, url string) error {
	return b.Set(ctx, "url", url)
}
