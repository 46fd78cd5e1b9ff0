package systemevents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/keyboard"
	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func openSystemEvents(t *testing.T) (*Application, *osatest.Runner) {
	t.Helper()
	sess, r, _ := xatest.NewSession(xatest.Running(Name, BundleID, 150))
	app, err := Open(context.Background(), sess)
	require.NoError(t, err)
	return app, r
}

func TestKeys(t *testing.T) {
	ctx := context.Background()
	app, r := openSystemEvents(t)

	require.NoError(t, app.Keystroke(ctx, "hello", 0))
	assert.Contains(t, r.Last(), `Application("System Events").keystroke("hello")`)

	require.NoError(t, app.Keystroke(ctx, "s", keyboard.Command|keyboard.Shift))
	assert.Contains(t, r.Last(), `Application("System Events").keystroke("s", {"using": ["command down", "shift down"]})`)

	require.NoError(t, app.Press(ctx, "cmd+opt+escape"))
	assert.Contains(t, r.Last(), `Application("System Events").keyCode(53, {"using": ["command down", "option down"]})`)

	assert.Error(t, app.Press(ctx, "cmd+nosuchkey"))
}

func TestMenuItem(t *testing.T) {
	ctx := context.Background()
	app, r := openSystemEvents(t)
	proc := app.Process("TextEdit")

	require.NoError(t, proc.ClickMenuItem(ctx, "File", "Export as PDF…"))
	assert.Contains(t, r.Last(), `Application("System Events").processes.byName("TextEdit").menuBars[0].menuBarItems.byName("File").menus[0].menuItems.byName("Export as PDF…").click()`)

	item, err := proc.MenuItem("Format", "Font", "Bold")
	require.NoError(t, err)
	assert.Equal(t, `Application("System Events").processes.byName("TextEdit").menuBars[0].menuBarItems.byName("Format").menus[0].menuItems.byName("Font").menus[0].menuItems.byName("Bold")`, item.JS())

	_, err = proc.MenuItem("File")
	assert.Error(t, err)
}

func TestChildren(t *testing.T) {
	app, _ := openSystemEvents(t)
	win := app.Process("Safari").Windows().First()

	buttons, err := win.Children(Query{Role: "AXButton", Description: "close button"})
	require.NoError(t, err)
	assert.Equal(t, `Application("System Events").processes.byName("Safari").windows[0].uiElements.whose({"_and": [{"description": {"_equals": "close button"}}, {"role": {"_equals": "AXButton"}}]})`, buttons.JS())

	all, err := win.Children(Query{})
	require.NoError(t, err)
	assert.Equal(t, `Application("System Events").processes.byName("Safari").windows[0].uiElements`, all.JS())
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	app, r := openSystemEvents(t)
	win := app.Process("Safari").Windows().First()

	r.Reply([]any{osatest.Ref(`Application("System Events").processes.byName("Safari").windows[0].groups[0].buttons[2]`)})
	btn, err := win.Find(ctx, Query{Role: "AXButton", Title: "Reload"})
	require.NoError(t, err)
	assert.Equal(t, `Application("System Events").processes.byName("Safari").windows[0].groups[0].buttons[2]`, btn.JS())
	assert.True(t, r.Contains(`e.role() === "AXButton" && e.title() === "Reload"`))
	assert.True(t, r.Contains(`.windows[0].entireContents();`))

	require.NoError(t, btn.Click(ctx))
	assert.Contains(t, r.Last(), `.buttons[2].click()`)

	r.Reply([]any{})
	_, err = win.Find(ctx, Query{Title: "Missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPosition(t *testing.T) {
	app, r := openSystemEvents(t)
	r.Reply([]int{10, 20})
	x, y, err := app.Process("Finder").Windows().First().Position(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, []int{x, y})

	r.Reply("nope")
	_, _, err = app.Process("Finder").Windows().First().Size(context.Background())
	assert.Error(t, err)
}
