package notes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func openNotes(t *testing.T) (*Application, *osatest.Runner) {
	t.Helper()
	sess, r, _ := xatest.NewSession(xatest.Running(Name, BundleID, 77))
	app, err := Open(context.Background(), sess)
	require.NoError(t, err)
	return app, r
}

func TestNewNote(t *testing.T) {
	ctx := context.Background()
	app, r := openNotes(t)

	r.Reply(osatest.Ref(`Application("Notes").notes.byId("x-coredata://N1")`))
	note, err := app.NewNote(ctx, "Plans <draft>", "a & b")
	require.NoError(t, err)
	assert.Equal(t, `Application("Notes").notes.byId("x-coredata://N1")`, note.JS())
	assert.Contains(t, r.Last(), `Application("Notes").Note({"body": "<b>Plans &lt;draft&gt;</b><br />a &amp; b"})`)
	assert.Contains(t, r.Last(), `Application("Notes").notes.push(o);`)

	folder := app.DefaultAccount().Folders().ByName("Work")
	r.Reply(osatest.Ref(`Application("Notes").folders.byId("F2")`))
	sub, err := folder.NewFolder(ctx, "Meetings")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `Application("Notes").defaultAccount.folders.byName("Work").folders.push(o);`)

	require.NoError(t, note.MoveTo(ctx, sub))
	assert.Contains(t, r.Last(), `Application("Notes").move(Application("Notes").notes.byId("x-coredata://N1"), {"to": Application("Notes").folders.byId("F2")})`)
}

func TestNoteReads(t *testing.T) {
	ctx := context.Background()
	app, r := openNotes(t)
	note := app.Notes().First()

	r.Reply("Plans\nsecond line")
	text, err := note.PlainText(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Plans\nsecond line", text)
	assert.Contains(t, r.Last(), `return Application("Notes").notes[0].plaintext();`)

	r.Reply(osatest.Ref(`Application("Notes").folders.byId("F1")`))
	f, err := note.Container(ctx)
	require.NoError(t, err)
	assert.Equal(t, `Application("Notes").folders.byId("F1")`, f.JS())

	require.NoError(t, f.Show(ctx))
	assert.Contains(t, r.Last(), `Application("Notes").show(Application("Notes").folders.byId("F1"))`)

	require.NoError(t, note.Attachments().First().Save(ctx, "/tmp/a.png"))
	assert.Contains(t, r.Last(), `Application("Notes").save(Application("Notes").notes[0].attachments[0], {"in": Path("/tmp/a.png")})`)
}

func TestDeleteNote(t *testing.T) {
	app, r := openNotes(t)
	r.Fail(-1728, "Can't get object.")
	err := app.Notes().ByName("gone").Delete(context.Background())
	require.Error(t, err)
	assert.Contains(t, r.Last(), `Application("Notes").notes.byName("gone").delete()`)
}
