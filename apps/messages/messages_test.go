package messages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func openMessages(t *testing.T) (*Application, *osatest.Runner) {
	t.Helper()
	sess, r, _ := xatest.NewSession(xatest.Running(Name, BundleID, 64))
	app, err := Open(context.Background(), sess)
	require.NoError(t, err)
	return app, r
}

func TestSend(t *testing.T) {
	ctx := context.Background()
	app, r := openMessages(t)

	chat := app.Chats().ByID("iMessage;-;+15550100")
	require.NoError(t, chat.Send(ctx, "on my way"))
	assert.Contains(t, r.Last(), `Application("Messages").send("on my way", {"to": Application("Messages").chats.byId("iMessage;-;+15550100")})`)

	buddy := app.Accounts().First().Participants().ByName("Gopher")
	require.NoError(t, app.Send(ctx, "hi", buddy))
	assert.Contains(t, r.Last(), `{"to": Application("Messages").accounts[0].participants.byName("Gopher")}`)

	require.NoError(t, app.SendFile(ctx, "/tmp/pic.png", chat))
	assert.Contains(t, r.Last(), `Application("Messages").send(Path("/tmp/pic.png"), {"to": Application("Messages").chats.byId("iMessage;-;+15550100")})`)

	assert.ErrorIs(t, chat.Send(ctx, ""), ErrEmptyMessage)
	assert.ErrorIs(t, app.Send(ctx, "", chat), ErrEmptyMessage)
	assert.Equal(t, 3, r.Count())
}

func TestFileTransfers(t *testing.T) {
	ctx := context.Background()
	app, r := openMessages(t)
	ft := app.FileTransfers().Last()

	r.Reply("/Users/gopher/Library/Messages/Attachments/a.png")
	p, err := ft.Path(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/Users/gopher/Library/Messages/Attachments/a.png", p)
	assert.Contains(t, r.Last(), `var p = Application("Messages").fileTransfers[-1].filePath();`)

	r.Reply(osatest.Ref(`Application("Messages").participants.byId("P1")`))
	who, err := ft.Participant(ctx)
	require.NoError(t, err)
	assert.Equal(t, `Application("Messages").participants.byId("P1")`, who.JS())

	r.Reply(nil)
	who, err = ft.Participant(ctx)
	require.NoError(t, err)
	assert.Nil(t, who)
}
