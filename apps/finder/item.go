package finder

import (
	"context"
	"net/url"
	"time"

	"github.com/tmc/xa"
)

// Item is a file, folder, disk or other container in the Finder.
type Item struct {
	*xa.Object
}

func newItem(o *xa.Object) *Item { return &Item{Object: o} }

func (i *Item) Name(ctx context.Context) (string, error)          { return i.GetString(ctx, "name") }
func (i *Item) DisplayedName(ctx context.Context) (string, error) { return i.GetString(ctx, "displayedName") }
func (i *Item) NameExtension(ctx context.Context) (string, error) { return i.GetString(ctx, "nameExtension") }
func (i *Item) Kind(ctx context.Context) (string, error)          { return i.GetString(ctx, "kind") }
func (i *Item) Comment(ctx context.Context) (string, error)       { return i.GetString(ctx, "comment") }
func (i *Item) URL(ctx context.Context) (string, error)           { return i.GetString(ctx, "url") }
func (i *Item) Size(ctx context.Context) (int, error)             { return i.GetInt(ctx, "size") }
func (i *Item) LabelIndex(ctx context.Context) (int, error)       { return i.GetInt(ctx, "labelIndex") }
func (i *Item) Locked(ctx context.Context) (bool, error)          { return i.GetBool(ctx, "locked") }
func (i *Item) Created(ctx context.Context) (time.Time, error)    { return i.GetTime(ctx, "creationDate") }
func (i *Item) Modified(ctx context.Context) (time.Time, error)   { return i.GetTime(ctx, "modificationDate") }

func (i *Item) SetName(ctx context.Context, name string) error   { return i.Set(ctx, "name", name) }
func (i *Item) SetComment(ctx context.Context, c string) error   { return i.Set(ctx, "comment", c) }
func (i *Item) SetLabelIndex(ctx context.Context, n int) error   { return i.Set(ctx, "labelIndex", n) }
func (i *Item) SetLocked(ctx context.Context, locked bool) error { return i.Set(ctx, "locked", locked) }

// POSIXPath returns the item's path, decoded from its file URL.
func (i *Item) POSIXPath(ctx context.Context) (string, error) {
	raw, err := i.URL(ctx)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

// Items returns the items a container holds.
func (i *Item) Items() *xa.List[*Item]   { return xa.NewList(i.Object, "items", newItem) }
func (i *Item) Files() *xa.List[*Item]   { return xa.NewList(i.Object, "files", newItem) }
func (i *Item) Folders() *xa.List[*Item] { return xa.NewList(i.Object, "folders", newItem) }

// Container returns the folder holding the item.
func (i *Item) Container(ctx context.Context) (*Item, error) {
	o, err := i.GetObject(ctx, "container")
	if err != nil || o == nil {
		return nil, err
	}
	return newItem(o), nil
}

// Reveal shows the item in a Finder window.
func (i *Item) Reveal(ctx context.Context) error {
	_, err := i.Invoke(ctx, "reveal", i.Object, nil)
	return err
}

// Select selects the item.
func (i *Item) Select(ctx context.Context) error {
	_, err := i.Invoke(ctx, "select", i.Object, nil)
	return err
}

// Open opens the item with its default application.
func (i *Item) Open(ctx context.Context) error {
	_, err := i.Invoke(ctx, "open", i.Object, nil)
	return err
}

// Recycle moves the item to the trash.
func (i *Item) Recycle(ctx context.Context) error {
	_, err := i.Invoke(ctx, "delete", i.Object, nil)
	return err
}

// Duplicate copies the item into its folder and returns the copy.
func (i *Item) Duplicate(ctx context.Context) (*Item, error) {
	return i.transfer(ctx, "duplicate", nil, false)
}

// CopyTo copies the item into folder, replacing an existing item of the
// same name when replace is set.
func (i *Item) CopyTo(ctx context.Context, folder *Item, replace bool) (*Item, error) {
	return i.transfer(ctx, "duplicate", folder, replace)
}

// MoveTo moves the item into folder.
func (i *Item) MoveTo(ctx context.Context, folder *Item, replace bool) (*Item, error) {
	return i.transfer(ctx, "move", folder, replace)
}

func (i *Item) transfer(ctx context.Context, command string, folder *Item, replace bool) (*Item, error) {
	var params map[string]any
	if folder != nil {
		params = map[string]any{"to": folder.Object}
		if replace {
			params["replacing"] = true
		}
	}
	v, err := i.Invoke(ctx, command, i.Object, params)
	if err != nil {
		return nil, err
	}
	if o := v.Object(); o != nil {
		return newItem(o), nil
	}
	return i, nil
}

// Window is a Finder window.
type Window struct {
	*xa.Window
}

func newWindow(o *xa.Object) *Window { return &Window{Window: xa.AsWindow(o)} }

func (w *Window) CurrentView(ctx context.Context) (string, error) { return w.GetString(ctx, "currentView") }

// SetCurrentView switches the view, e.g. "list view" or "icon view".
func (w *Window) SetCurrentView(ctx context.Context, view string) error {
	return w.Set(ctx, "currentView", view)
}

// Target returns the container the window shows.
func (w *Window) Target(ctx context.Context) (*Item, error) {
	o, err := w.GetObject(ctx, "target")
	if err != nil || o == nil {
		return nil, err
	}
	return newItem(o), nil
}

// SetTarget shows container in the window.
func (w *Window) SetTarget(ctx context.Context, container *Item) error {
	return w.Set(ctx, "target", container.Object)
}
