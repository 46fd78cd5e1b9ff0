package finder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func openFinder(t *testing.T) (*Application, *osatest.Runner) {
	t.Helper()
	sess, r, _ := xatest.NewSession(xatest.Running(Name, BundleID, 300))
	app, err := Open(context.Background(), sess)
	require.NoError(t, err)
	return app, r
}

func TestItemAt(t *testing.T) {
	app, _ := openFinder(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", `Application("Finder").startupDisk`},
		{"/Users/gopher/notes.txt", `Application("Finder").startupDisk.folders.byName("Users").folders.byName("gopher").items.byName("notes.txt")`},
		{"/Users/gopher/", `Application("Finder").startupDisk.folders.byName("Users").items.byName("gopher")`},
		{"/Volumes/Backup/a", `Application("Finder").disks.byName("Backup").items.byName("a")`},
		{"/Volumes/Backup", `Application("Finder").disks.byName("Backup")`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			item, err := app.ItemAt(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, item.JS())
		})
	}

	_, err := app.ItemAt("relative/path")
	assert.Error(t, err)
}

func TestDirectories(t *testing.T) {
	app, _ := openFinder(t)
	assert.Equal(t, `Application("Finder").home`, app.Directory(HomeDirectory).JS())
	assert.Equal(t, `Application("Finder").trash`, app.Directory(TrashDirectory).JS())
	assert.Equal(t, `Application("Finder").home.folders.byName("Downloads")`, app.Directory(DownloadsDirectory).JS())
	assert.Equal(t, `Application("Finder").startupDisk.folders.byName("Applications")`, app.Directory(ApplicationsDirectory).JS())
}

func TestSelection(t *testing.T) {
	ctx := context.Background()
	app, r := openFinder(t)

	r.Reply([]any{
		osatest.Ref(`Application("Finder").startupDisk.folders.byName("tmp").items.byName("a")`),
		osatest.Ref(`Application("Finder").startupDisk.folders.byName("tmp").items.byName("b")`),
	})
	sel, err := app.Selection(ctx)
	require.NoError(t, err)
	require.Len(t, sel, 2)
	assert.Contains(t, sel[1].JS(), `byName("b")`)

	r.Reply("file:///Users/gopher/My%20File.txt")
	p, err := sel[0].POSIXPath(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/Users/gopher/My File.txt", p)
}

func TestPathCommands(t *testing.T) {
	ctx := context.Background()
	app, r := openFinder(t)

	require.NoError(t, app.Reveal(ctx, "/tmp/a", "/tmp/b"))
	assert.Contains(t, r.Last(), `Application("Finder").reveal([Path("/tmp/a"), Path("/tmp/b")])`)

	require.NoError(t, app.Recycle(ctx, "/tmp/a"))
	assert.Contains(t, r.Last(), `Application("Finder").delete([Path("/tmp/a")])`)

	require.NoError(t, app.EmptyTrash(ctx))
	assert.Contains(t, r.Last(), `Application("Finder").empty(Application("Finder").trash)`)

	r.Reply([]any{osatest.Ref(`Application("Finder").startupDisk.folders.byName("tmp").items.byName("a copy")`)})
	dups, err := app.Duplicate(ctx, "/tmp/a")
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Contains(t, r.Last(), `.duplicate([Path("/tmp/a")])`)

	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(dir, link))
	require.NoError(t, app.Select(ctx, link))
	real, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `Application("Finder").select([Path("`+real+`")])`)
}

func TestDelete(t *testing.T) {
	app, r := openFinder(t)
	dir := t.TempDir()
	f := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))

	require.NoError(t, app.Delete(context.Background(), f))
	_, err := os.Stat(f)
	assert.True(t, os.IsNotExist(err))
	assert.Zero(t, r.Count(), "permanent deletion does not go through the Finder")
}

func TestItemTransfer(t *testing.T) {
	ctx := context.Background()
	app, r := openFinder(t)
	item, err := app.ItemAt("/tmp/a")
	require.NoError(t, err)

	r.Reply(osatest.Ref(`Application("Finder").desktop.items.byName("a")`))
	moved, err := item.MoveTo(ctx, app.Desktop(), true)
	require.NoError(t, err)
	assert.Equal(t, `Application("Finder").desktop.items.byName("a")`, moved.JS())
	assert.Contains(t, r.Last(), `Application("Finder").move(Application("Finder").startupDisk.folders.byName("tmp").items.byName("a"), {"replacing": true, "to": Application("Finder").desktop})`)

	require.NoError(t, app.FrontWindow().SetTarget(ctx, app.Home()))
	assert.Contains(t, r.Last(), `Application("Finder").finderWindows[0].target = Application("Finder").home;`)
}
