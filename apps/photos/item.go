package photos

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/xa"
)

// Container is an album or a folder.
type Container struct {
	*xa.Object
}

func newContainer(o *xa.Object) *Container { return &Container{Object: o} }

func (c *Container) ID(ctx context.Context) (string, error)   { return c.GetString(ctx, "id") }
func (c *Container) Name(ctx context.Context) (string, error) { return c.GetString(ctx, "name") }

func (c *Container) SetName(ctx context.Context, name string) error { return c.Set(ctx, "name", name) }

// Parent returns the folder holding the container.
func (c *Container) Parent() *Folder { return newFolder(c.Element("parent")) }

// Spotlight shows the container in the frontmost window.
func (c *Container) Spotlight(ctx context.Context) error {
	_, err := c.Invoke(ctx, "spotlight", c.Object, nil)
	return err
}

// Album is a user album or one of the built-in ones.
type Album struct {
	Container
}

func newAlbum(o *xa.Object) *Album { return &Album{Container{o}} }

func (a *Album) MediaItems() *xa.List[*MediaItem] {
	return xa.NewList(a.Object, "mediaItems", newMediaItem)
}

// Folder holds albums and other folders.
type Folder struct {
	Container
}

func newFolder(o *xa.Object) *Folder { return &Folder{Container{o}} }

func (f *Folder) Albums() *xa.List[*Album]   { return xa.NewList(f.Object, "albums", newAlbum) }
func (f *Folder) Folders() *xa.List[*Folder] { return xa.NewList(f.Object, "folders", newFolder) }
func (f *Folder) Containers() *xa.List[*Container] {
	return xa.NewList(f.Object, "containers", newContainer)
}

// NewAlbum creates an album inside the folder.
func (f *Folder) NewAlbum(ctx context.Context, name string) (*Album, error) {
	return f.Albums().Push(ctx, "album", map[string]any{"name": name})
}

// MediaItem is a photo or a video.
type MediaItem struct {
	*xa.Object
}

func newMediaItem(o *xa.Object) *MediaItem { return &MediaItem{Object: o} }

func (m *MediaItem) ID(ctx context.Context) (string, error)       { return m.GetString(ctx, "id") }
func (m *MediaItem) Name(ctx context.Context) (string, error)     { return m.GetString(ctx, "name") }
func (m *MediaItem) Filename(ctx context.Context) (string, error) { return m.GetString(ctx, "filename") }
func (m *MediaItem) Favorite(ctx context.Context) (bool, error)   { return m.GetBool(ctx, "favorite") }
func (m *MediaItem) Date(ctx context.Context) (time.Time, error)  { return m.GetTime(ctx, "date") }
func (m *MediaItem) Height(ctx context.Context) (int, error)      { return m.GetInt(ctx, "height") }
func (m *MediaItem) Width(ctx context.Context) (int, error)       { return m.GetInt(ctx, "width") }
func (m *MediaItem) Size(ctx context.Context) (int, error)        { return m.GetInt(ctx, "size") }
func (m *MediaItem) Altitude(ctx context.Context) (float64, error) {
	return m.GetFloat(ctx, "altitude")
}

// Description returns the item's caption.
func (m *MediaItem) Description(ctx context.Context) (string, error) {
	return m.GetString(ctx, "description")
}

// Keywords returns the item's keywords.
func (m *MediaItem) Keywords(ctx context.Context) ([]string, error) {
	v, err := m.Get(ctx, "keywords")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(v.List()))
	for _, k := range v.List() {
		out = append(out, k.Str())
	}
	return out, nil
}

// Location returns where the item was taken. ok is false when Photos has
// no location for it.
func (m *MediaItem) Location(ctx context.Context) (lat, lon float64, ok bool, err error) {
	v, err := m.Get(ctx, "location")
	if err != nil {
		return 0, 0, false, err
	}
	l := v.List()
	if len(l) != 2 || l[0].IsNull() || l[1].IsNull() {
		return 0, 0, false, nil
	}
	return l[0].Float(), l[1].Float(), true, nil
}

func (m *MediaItem) SetName(ctx context.Context, name string) error { return m.Set(ctx, "name", name) }
func (m *MediaItem) SetFavorite(ctx context.Context, v bool) error  { return m.Set(ctx, "favorite", v) }
func (m *MediaItem) SetDate(ctx context.Context, t time.Time) error { return m.Set(ctx, "date", t) }
func (m *MediaItem) SetDescription(ctx context.Context, s string) error {
	return m.Set(ctx, "description", s)
}
func (m *MediaItem) SetKeywords(ctx context.Context, keywords []string) error {
	return m.Set(ctx, "keywords", keywords)
}

// SetLocation moves the item to a latitude and longitude.
func (m *MediaItem) SetLocation(ctx context.Context, lat, lon float64) error {
	return m.Set(ctx, "location", []float64{lat, lon})
}

// Duplicate copies the item and returns the copy.
func (m *MediaItem) Duplicate(ctx context.Context) (*MediaItem, error) {
	v, err := m.Invoke(ctx, "duplicate", m.Object, nil)
	if err != nil {
		return nil, err
	}
	o := v.Object()
	if o == nil {
		return nil, fmt.Errorf("photos: duplicate %s: no media item returned", m.JS())
	}
	return newMediaItem(o), nil
}

// Spotlight shows the item in the frontmost window.
func (m *MediaItem) Spotlight(ctx context.Context) error {
	_, err := m.Invoke(ctx, "spotlight", m.Object, nil)
	return err
}
