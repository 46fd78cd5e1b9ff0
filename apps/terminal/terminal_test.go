package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/osa"
	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func openTerminal(t *testing.T) (*Application, *osatest.Runner) {
	t.Helper()
	sess, r, _ := xatest.NewSession(xatest.Running(Name, BundleID, 900))
	app, err := Open(context.Background(), sess)
	require.NoError(t, err)
	return app, r
}

func TestDoScript(t *testing.T) {
	ctx := context.Background()
	app, r := openTerminal(t)

	r.Reply(osatest.Ref(`Application("Terminal").windows.byId(12).tabs[0]`))
	tab, err := app.DoScript(ctx, "make test")
	require.NoError(t, err)
	assert.Equal(t, `Application("Terminal").windows.byId(12).tabs[0]`, tab.JS())
	assert.Contains(t, r.Last(), `Application("Terminal").doScript("make test")`)

	require.NoError(t, tab.DoScript(ctx, "ls"))
	assert.Contains(t, r.Last(), `Application("Terminal").doScript("ls", {"in": Application("Terminal").windows.byId(12).tabs[0]})`)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	app, r := openTerminal(t)
	tab := app.FrontWindow().SelectedTab()
	assert.Equal(t, `Application("Terminal").windows[0].selectedTab`, tab.JS())

	r.Reply("$ ")
	r.Reply(nil)
	r.Reply(true)
	r.Reply(false)
	r.Reply("$ echo hi\nhi\n$ ")
	out, err := tab.Run(ctx, "echo hi", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "echo hi\nhi\n$ ", out)
	assert.Equal(t, 5, r.Count())
}

func TestWaitCanceled(t *testing.T) {
	app, r := openTerminal(t)
	ctx, cancel := context.WithCancel(context.Background())
	r.Handler = func(osa.Script) ([]byte, error) {
		cancel()
		return []byte(`{"ok":true}`), nil
	}
	err := app.FrontWindow().SelectedTab().Wait(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTabProperties(t *testing.T) {
	ctx := context.Background()
	app, r := openTerminal(t)
	tab := app.Windows().At(1).Tabs().At(2)

	r.Reply([]string{"login", "bash", "vim"})
	procs, err := tab.Processes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"login", "bash", "vim"}, procs)

	r.Reply("/dev/ttys003")
	tty, err := tab.TTY(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttys003", tty)

	require.NoError(t, tab.SetCustomTitle(ctx, "build"))
	assert.Contains(t, r.Last(), `Application("Terminal").windows[1].tabs[2].customTitle = "build";`)

	require.NoError(t, tab.SetSettings(ctx, app.SettingsSets().ByName("Pro")))
	assert.Contains(t, r.Last(), `.currentSettings = Application("Terminal").settingsSets.byName("Pro");`)
}
