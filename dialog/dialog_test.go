package dialog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa"
	"github.com/tmc/xa/osa"
	"github.com/tmc/xa/osa/osatest"
)

func testSession() (*xa.Session, *osatest.Runner) {
	r := osatest.New()
	return xa.NewSession(xa.NewConfig(), xa.WithRunner(r)), r
}

func TestShow(t *testing.T) {
	ctx := context.Background()
	sess, r := testSession()
	r.Reply(map[string]any{"buttonReturned": "OK", "textReturned": "hunter2", "gaveUp": false})

	resp, err := Show(ctx, sess, Dialog{
		Text:         "Password?",
		Title:        "Login",
		Buttons:      []string{"Cancel", "OK"},
		Icon:         IconCaution,
		Input:        true,
		HiddenAnswer: true,
		GiveUpAfter:  1500 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, Response{Button: "OK", Text: "hunter2"}, resp)

	src := r.Last()
	assert.Contains(t, src, "app.includeStandardAdditions = true;")
	assert.Contains(t, src, `return app.displayDialog("Password?", {"buttons": ["Cancel", "OK"], "defaultAnswer": "", "givingUpAfter": 2, "hiddenAnswer": true, "withIcon": "caution", "withTitle": "Login"});`)
}

func TestShowCanceled(t *testing.T) {
	sess, r := testSession()
	r.Fail(osa.CodeCanceled, "User canceled.")
	_, err := Show(context.Background(), sess, Dialog{Text: "Continue?"})
	assert.ErrorIs(t, err, xa.ErrCanceled)
	assert.Contains(t, r.Last(), `return app.displayDialog("Continue?");`)
}

func TestAlertAndNotify(t *testing.T) {
	ctx := context.Background()
	sess, r := testSession()
	r.Reply(map[string]any{"buttonReturned": "Delete", "gaveUp": true})
	resp, err := ShowAlert(ctx, sess, Alert{Message: "Delete?", Detail: "This cannot be undone.", Kind: Critical})
	require.NoError(t, err)
	assert.Equal(t, Response{Button: "Delete", GaveUp: true}, resp)
	assert.Contains(t, r.Last(), `app.displayAlert("Delete?", {"as": "critical", "message": "This cannot be undone."})`)

	require.NoError(t, Notify(ctx, sess, Notification{Message: "Done", Title: "xa", Sound: "Glass"}))
	assert.Contains(t, r.Last(), `app.displayNotification("Done", {"soundName": "Glass", "withTitle": "xa"})`)

	require.NoError(t, Say(ctx, sess, "hello", "Samantha"))
	assert.Contains(t, r.Last(), `app.say("hello", {"using": "Samantha"})`)

	require.NoError(t, Beep(ctx, sess, 0))
	assert.Contains(t, r.Last(), "app.beep(1);")
}

func TestChooseFromList(t *testing.T) {
	ctx := context.Background()
	sess, r := testSession()
	r.Reply([]string{"b"})
	got, err := ChooseFromList(ctx, sess, List{Items: []string{"a", "b"}, Prompt: "Pick", Multiple: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got)
	assert.Contains(t, r.Last(), `app.chooseFromList(["a", "b"], {"multipleSelectionsAllowed": true, "withPrompt": "Pick"});`)

	r.Reply(false)
	_, err = ChooseFromList(ctx, sess, List{Items: []string{"a"}})
	assert.ErrorIs(t, err, xa.ErrCanceled)
}

func TestChoosePaths(t *testing.T) {
	ctx := context.Background()
	sess, r := testSession()
	r.Reply([]string{"/tmp/a.png", "/tmp/b.png"})
	got, err := ChooseFile(ctx, sess, Files{Types: []string{"public.png"}, Location: "/tmp", Multiple: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/a.png", "/tmp/b.png"}, got)
	assert.Contains(t, r.Last(), `app.chooseFile({"defaultLocation": Path("/tmp"), "multipleSelectionsAllowed": true, "ofType": ["public.png"]});`)
	assert.Contains(t, r.Last(), "p.toString()")

	r.Reply([]string{"/Users"})
	_, err = ChooseFolder(ctx, sess, Files{Types: []string{"x"}})
	require.NoError(t, err)
	assert.Contains(t, r.Last(), "app.chooseFolder({});")

	r.Reply([]string{"/tmp/new.txt"})
	name, err := ChooseFileName(ctx, sess, "", "new.txt")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/new.txt", name)
}

func TestChooseColor(t *testing.T) {
	sess, r := testSession()
	r.Reply([]int{65535, 0, 32768})
	c, err := ChooseColor(context.Background(), sess, Color{R: 1})
	require.NoError(t, err)
	assert.Equal(t, Color{R: 65535, B: 32768}, c)
	assert.Contains(t, r.Last(), `app.chooseColor({"defaultColor": [1, 0, 0]});`)
}
