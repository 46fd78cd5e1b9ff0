// Package photos scripts Photos: albums, folders, media items, imports,
// exports and slideshows.
package photos

import (
	"context"
	"fmt"

	"github.com/tmc/xa"
)

const (
	Name     = "Photos"
	BundleID = "com.apple.Photos"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/photos"})
}

// Application is Photos.
type Application struct {
	*xa.Application
}

// Open returns Photos, launching it hidden when it is not running.
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

func (a *Application) Albums() *xa.List[*Album]   { return xa.NewList(a.Object, "albums", newAlbum) }
func (a *Application) Folders() *xa.List[*Folder] { return xa.NewList(a.Object, "folders", newFolder) }
func (a *Application) Containers() *xa.List[*Container] {
	return xa.NewList(a.Object, "containers", newContainer)
}
func (a *Application) MediaItems() *xa.List[*MediaItem] {
	return xa.NewList(a.Object, "mediaItems", newMediaItem)
}

// Selection returns the media items selected in the frontmost window.
func (a *Application) Selection() *xa.List[*MediaItem] {
	return xa.NewList(a.Object, "selection", newMediaItem)
}

func (a *Application) FavoritesAlbum() *Album { return newAlbum(a.Element("favoritesAlbum")) }
func (a *Application) RecentlyDeletedAlbum() *Album {
	return newAlbum(a.Element("recentlyDeletedAlbum"))
}

func (a *Application) SlideshowRunning(ctx context.Context) (bool, error) {
	return a.GetBool(ctx, "slideshowRunning")
}

// Import imports files into the library, or into album when it is not nil,
// and returns the new media items. With skipDuplicateCheck set Photos
// imports files it already holds again.
func (a *Application) Import(ctx context.Context, paths []string, album *Album, skipDuplicateCheck bool) ([]*MediaItem, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("photos: import: no files")
	}
	files := make([]any, len(paths))
	for i, p := range paths {
		files[i] = xa.Path(p)
	}
	params := map[string]any{"skipCheckDuplicates": skipDuplicateCheck}
	if album != nil {
		params["into"] = album
	}
	v, err := a.Invoke(ctx, "import", files, params)
	if err != nil {
		return nil, err
	}
	return mediaItems(v), nil
}

// Open imports paths without adding them to an album.
func (a *Application) Open(ctx context.Context, paths ...string) error {
	_, err := a.Import(ctx, paths, nil, false)
	return err
}

// Export writes items to the folder dir. With originals set the original
// files are written instead of rendered JPEGs.
func (a *Application) Export(ctx context.Context, items []*MediaItem, dir string, originals bool) error {
	_, err := a.Invoke(ctx, "export", items, map[string]any{"to": xa.Path(dir), "usingOriginals": originals})
	return err
}

// Add adds items to album.
func (a *Application) Add(ctx context.Context, items []*MediaItem, album *Album) error {
	_, err := a.Invoke(ctx, "add", items, map[string]any{"to": album})
	return err
}

// Search returns the media items Photos finds for query.
func (a *Application) Search(ctx context.Context, query string) ([]*MediaItem, error) {
	v, err := a.Invoke(ctx, "search", nil, map[string]any{"for": query})
	if err != nil {
		return nil, err
	}
	return mediaItems(v), nil
}

// NewAlbum creates a top-level album.
func (a *Application) NewAlbum(ctx context.Context, name string) (*Album, error) {
	return a.Albums().Push(ctx, "album", map[string]any{"name": name})
}

// NewFolder creates a top-level folder.
func (a *Application) NewFolder(ctx context.Context, name string) (*Folder, error) {
	return a.Folders().Push(ctx, "folder", map[string]any{"name": name})
}

// StartSlideshow plays a slideshow of an album, a folder or a list of
// media items.
func (a *Application) StartSlideshow(ctx context.Context, of any) error {
	_, err := a.Invoke(ctx, "startSlideshow", nil, map[string]any{"using": of})
	return err
}

func (a *Application) StopSlideshow(ctx context.Context) error   { return a.slideshow(ctx, "endSlideshow") }
func (a *Application) NextSlide(ctx context.Context) error       { return a.slideshow(ctx, "nextSlide") }
func (a *Application) PreviousSlide(ctx context.Context) error   { return a.slideshow(ctx, "previousSlide") }
func (a *Application) PauseSlideshow(ctx context.Context) error  { return a.slideshow(ctx, "pauseSlideshow") }
func (a *Application) ResumeSlideshow(ctx context.Context) error { return a.slideshow(ctx, "resumeSlideshow") }

func (a *Application) slideshow(ctx context.Context, cmd string) error {
	_, err := a.Invoke(ctx, cmd, nil, nil)
	return err
}

func mediaItems(v xa.Value) []*MediaItem {
	var out []*MediaItem
	for _, e := range v.List() {
		if o := e.Object(); o != nil {
			out = append(out, newMediaItem(o))
		}
	}
	return out
}
