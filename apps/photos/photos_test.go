package photos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa"
	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func openPhotos(t *testing.T) (*Application, *osatest.Runner) {
	t.Helper()
	sess, r, _ := xatest.NewSession(xatest.Running(Name, BundleID, 610))
	app, err := Open(context.Background(), sess)
	require.NoError(t, err)
	return app, r
}

func TestRegistered(t *testing.T) {
	a, ok := xa.Lookup(BundleID)
	require.True(t, ok)
	assert.Equal(t, Name, a.Name)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	app, r := openPhotos(t)
	trip := app.Albums().ByName("Trip")

	tests := []struct {
		name  string
		album *Album
		skip  bool
		want  string
	}{
		{"library", nil, false, `Application("Photos").import([Path("/tmp/a.jpg"), Path("/tmp/b.heic")], {"skipCheckDuplicates": false})`},
		{"album", trip, true, `Application("Photos").import([Path("/tmp/a.jpg"), Path("/tmp/b.heic")], {"into": Application("Photos").albums.byName("Trip"), "skipCheckDuplicates": true})`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.Reply([]any{
				osatest.Ref(`Application("Photos").mediaItems.byId("A")`),
				osatest.Ref(`Application("Photos").mediaItems.byId("B")`),
			})
			items, err := app.Import(ctx, []string{"/tmp/a.jpg", "/tmp/b.heic"}, tt.album, tt.skip)
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, `Application("Photos").mediaItems.byId("B")`, items[1].JS())
			assert.Contains(t, r.Last(), tt.want)
		})
	}

	_, err := app.Import(ctx, nil, nil, false)
	assert.Error(t, err)

	r.Reply([]any{})
	require.NoError(t, app.Open(ctx, "/tmp/c.png"))
	assert.Contains(t, r.Last(), `import([Path("/tmp/c.png")], {"skipCheckDuplicates": false})`)
}

func TestAlbumsAndFolders(t *testing.T) {
	ctx := context.Background()
	app, r := openPhotos(t)

	r.Reply([]string{"Trip", "Family"})
	names, err := app.Albums().Strings(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Trip", "Family"}, names)
	assert.Contains(t, r.Last(), `return Application("Photos").albums.name();`)

	folder := app.Folders().ByName("2024")
	assert.Equal(t, `Application("Photos").folders.byName("2024").albums[0].mediaItems`, folder.Albums().First().MediaItems().JS())
	assert.Equal(t, `Application("Photos").albums[0].parent`, app.Albums().First().Parent().JS())

	r.Reply(osatest.Ref(`Application("Photos").folders.byName("2024").albums.byId("X")`))
	album, err := folder.NewAlbum(ctx, "Summer")
	require.NoError(t, err)
	assert.Equal(t, `Application("Photos").folders.byName("2024").albums.byId("X")`, album.JS())
	assert.Contains(t, r.Last(), `Application("Photos").Album({"name": "Summer"})`)
	assert.Contains(t, r.Last(), `Application("Photos").folders.byName("2024").albums.push(o);`)

	item := app.FavoritesAlbum().MediaItems().At(0)
	require.NoError(t, app.Add(ctx, []*MediaItem{item}, album))
	assert.Contains(t, r.Last(), `Application("Photos").add([Application("Photos").favoritesAlbum.mediaItems[0]], {"to": Application("Photos").folders.byName("2024").albums.byId("X")})`)

	require.NoError(t, app.Export(ctx, []*MediaItem{item}, "/tmp/out", true))
	assert.Contains(t, r.Last(), `export([Application("Photos").favoritesAlbum.mediaItems[0]], {"to": Path("/tmp/out"), "usingOriginals": true})`)
}

func TestMediaItem(t *testing.T) {
	ctx := context.Background()
	app, r := openPhotos(t)
	item := app.MediaItems().ByID("A")

	r.Reply([]string{"beach", "sunset"})
	kw, err := item.Keywords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beach", "sunset"}, kw)

	tests := []struct {
		name  string
		reply any
		ok    bool
		lat   float64
		lon   float64
	}{
		{"known", []any{37.5, -122.25}, true, 37.5, -122.25},
		{"missing", []any{nil, nil}, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.Reply(tt.reply)
			lat, lon, ok, err := item.Location(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.lat, lat)
			assert.Equal(t, tt.lon, lon)
		})
	}

	require.NoError(t, item.SetLocation(ctx, 1.5, 2))
	assert.Contains(t, r.Last(), `Application("Photos").mediaItems.byId("A").location = [1.5, 2];`)

	require.NoError(t, item.SetFavorite(ctx, true))
	assert.Contains(t, r.Last(), `.favorite = true;`)

	when := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.Reply(osatest.Date(when))
	got, err := item.Date(ctx)
	require.NoError(t, err)
	assert.True(t, when.Equal(got))

	r.Reply(osatest.Ref(`Application("Photos").mediaItems.byId("A2")`))
	dup, err := item.Duplicate(ctx)
	require.NoError(t, err)
	assert.Equal(t, `Application("Photos").mediaItems.byId("A2")`, dup.JS())

	r.Reply(nil)
	_, err = item.Duplicate(ctx)
	assert.Error(t, err)
}

func TestSearchAndSlideshow(t *testing.T) {
	ctx := context.Background()
	app, r := openPhotos(t)

	r.Reply([]any{osatest.Ref(`Application("Photos").mediaItems.byId("D")`)})
	found, err := app.Search(ctx, "dog")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Contains(t, r.Last(), `Application("Photos").search({"for": "dog"})`)

	require.NoError(t, app.StartSlideshow(ctx, app.Albums().ByName("Trip")))
	assert.Contains(t, r.Last(), `startSlideshow({"using": Application("Photos").albums.byName("Trip")})`)

	for name, fn := range map[string]func(context.Context) error{
		"endSlideshow":    app.StopSlideshow,
		"nextSlide":       app.NextSlide,
		"previousSlide":   app.PreviousSlide,
		"pauseSlideshow":  app.PauseSlideshow,
		"resumeSlideshow": app.ResumeSlideshow,
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, fn(ctx))
			assert.Contains(t, r.Last(), `return Application("Photos").`+name+`();`)
		})
	}
}
