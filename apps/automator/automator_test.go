package automator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa"
	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func openAutomator(t *testing.T) (*Application, *osatest.Runner) {
	t.Helper()
	sess, r, _ := xatest.NewSession(xatest.Running(Name, BundleID, 620))
	app, err := Open(context.Background(), sess)
	require.NoError(t, err)
	return app, r
}

func TestRegistered(t *testing.T) {
	a, ok := xa.Lookup(BundleID)
	require.True(t, ok)
	assert.Equal(t, Name, a.Name)
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	app, r := openAutomator(t)
	w := app.Workflows().ByName("Resize.workflow")

	tests := []struct {
		name    string
		reply   map[string]any
		want    string
		wantErr bool
	}{
		{"ok", map[string]any{"result": "done", "number": 0, "message": ""}, "done", false},
		{"action failed", map[string]any{"result": nil, "number": -128, "message": "User canceled."}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.Reply(tt.reply)
			v, err := w.Execute(ctx)
			assert.Contains(t, r.Last(), `var w = Application("Automator").workflows.byName("Resize.workflow");`)
			assert.Contains(t, r.Last(), "var r = w.execute();")
			if tt.wantErr {
				var ee *ExecutionError
				require.ErrorAs(t, err, &ee)
				assert.Equal(t, -128, ee.Number)
				assert.Equal(t, "User canceled.", ee.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Str())
		})
	}
}

func TestOpenWorkflow(t *testing.T) {
	ctx := context.Background()
	app, r := openAutomator(t)

	tests := []struct {
		name  string
		reply any
		want  string
	}{
		{"reference", osatest.Ref(`Application("Automator").workflows.byId(3)`), `Application("Automator").workflows.byId(3)`},
		{"no reference", nil, `Application("Automator").workflows.byName("Resize.workflow")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.Reply(tt.reply)
			w, err := app.OpenWorkflow(ctx, "/tmp/Resize.workflow")
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.JS())
			assert.Contains(t, r.Last(), `Application("Automator").open(Path("/tmp/Resize.workflow"))`)
		})
	}
}

func TestActionsAndVariables(t *testing.T) {
	ctx := context.Background()
	app, r := openAutomator(t)
	w := app.Workflows().First()
	action := app.Actions().ByName("Scale Images")

	require.NoError(t, app.Add(ctx, action, w, 0))
	assert.Contains(t, r.Last(), `Application("Automator").add(Application("Automator").automatorActions.byName("Scale Images"), {"atIndex": 0, "to": Application("Automator").workflows[0]})`)

	require.NoError(t, app.Add(ctx, action, w, -1))
	assert.Contains(t, r.Last(), `add(Application("Automator").automatorActions.byName("Scale Images"), {"to": Application("Automator").workflows[0]})`)

	r.Reply([]string{"Photos", "Files & Folders"})
	cats, err := action.Category(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Photos", "Files & Folders"}, cats)

	r.Reply("irreversible")
	level, err := action.WarningLevel(ctx)
	require.NoError(t, err)
	assert.Equal(t, WarningIrreversible, level)

	assert.Equal(t, `Application("Automator").workflows[0].automatorActions[1].settings.byName("size")`,
		w.Actions().At(1).Settings().ByName("size").JS())
	assert.Equal(t, `Application("Automator").automatorActions.byName("Scale Images").parentWorkflow`, action.ParentWorkflow().JS())

	v := w.Variables().ByName("Today")
	require.NoError(t, v.SetValue(ctx, "Monday"))
	assert.Contains(t, r.Last(), `Application("Automator").workflows[0].variables.byName("Today").value = "Monday";`)

	r.Reply([]string{"Today", "Path"})
	names, err := w.Variables().Strings(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Today", "Path"}, names)
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	app, r := openAutomator(t)
	w := app.Workflows().First()

	require.NoError(t, w.SaveAs(ctx, "/tmp/Copy.workflow"))
	assert.Contains(t, r.Last(), `Application("Automator").save(Application("Automator").workflows[0], {"as": "workflow", "in": Path("/tmp/Copy.workflow")})`)
	assert.Error(t, w.SaveAs(ctx, ""))

	require.NoError(t, w.Close(ctx))
	assert.Contains(t, r.Last(), `close(Application("Automator").workflows[0], {"saving": "no"})`)

	r.Reply(osatest.Ref(`Application("Automator").workflows.byId(9)`))
	nw, err := app.NewWorkflow(ctx, "Empty")
	require.NoError(t, err)
	assert.Equal(t, `Application("Automator").workflows.byId(9)`, nw.JS())
	assert.Contains(t, r.Last(), `Application("Automator").Workflow({"name": "Empty"})`)
}
