package chromium

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/xatest"
)

func TestLookup(t *testing.T) {
	tests := map[string]Browser{
		"chrome":            Chrome,
		"Google Chrome":     Chrome,
		"com.brave.Browser": Brave,
		"edge":              Edge,
		"de.iridiumbrowser": Iridium,
	}
	for in, want := range tests {
		got, ok := Lookup(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := Lookup("Netscape")
	assert.False(t, ok)
}

func TestOpenLaunchesHidden(t *testing.T) {
	ctx := context.Background()
	sess, _, ws := xatest.NewSession()
	app, err := Open(ctx, sess, Brave)
	require.NoError(t, err)
	assert.Equal(t, []string{"/Applications/Brave Browser.app"}, ws.Launched)
	assert.Equal(t, `Application("Brave Browser")`, app.JS())
}

func TestTabCommands(t *testing.T) {
	ctx := context.Background()
	sess, r, _ := xatest.NewSession(xatest.Running(Chrome.Name, Chrome.BundleID, 77))
	app, err := Open(ctx, sess, Chrome)
	require.NoError(t, err)

	tab := app.FrontWindow().ActiveTab()
	tests := []struct {
		name string
		run  func(context.Context) error
		want string
	}{
		{"reload", tab.Reload, "reload"},
		{"go back", tab.GoBack, "goBack"},
		{"copy", tab.CopySelection, "copySelection"},
		{"view source", tab.ViewSource, "viewSource"},
		{"close", tab.Close, "close"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.run(ctx))
			assert.Contains(t, r.Last(), `return Application("Google Chrome").`+tt.want+`(Application("Google Chrome").windows[0].activeTab);`)
		})
	}

	r.Reply("Example Domain")
	v, err := tab.Execute(ctx, "document.title")
	require.NoError(t, err)
	assert.Equal(t, "Example Domain", v.Str())
	assert.Contains(t, r.Last(), `execute(Application("Google Chrome").windows[0].activeTab, {"javascript": "document.title"})`)
}

func TestWindowsAndBookmarks(t *testing.T) {
	ctx := context.Background()
	sess, r, _ := xatest.NewSession(xatest.Running(Edge.Name, Edge.BundleID, 9))
	app, err := Open(ctx, sess, Edge)
	require.NoError(t, err)

	_, err = app.NewWindow(ctx, true)
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `Application("Microsoft Edge").Window({"mode": "incognito"})`)

	_, err = app.OpenLocation(ctx, "go.dev")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `Tab({"url": "https://go.dev"})`)

	r.Reply([]string{"https://a", "https://b"})
	urls, err := app.BookmarksBar().BookmarkItems().Strings(ctx, "url")
	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, r.Last(), `Application("Microsoft Edge").bookmarksBar.bookmarkItems.url()`)
}
