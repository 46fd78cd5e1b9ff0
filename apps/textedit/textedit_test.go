package textedit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func openTextEdit(t *testing.T) (*Application, *osatest.Runner) {
	t.Helper()
	sess, r, _ := xatest.NewSession(xatest.Running(Name, BundleID, 111))
	app, err := Open(context.Background(), sess)
	require.NoError(t, err)
	return app, r
}

func TestNewDocument(t *testing.T) {
	ctx := context.Background()
	app, r := openTextEdit(t)

	r.Reply(osatest.Ref(`Application("TextEdit").documents.byName("Untitled")`))
	doc, err := app.NewDocument(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, `Application("TextEdit").documents.byName("Untitled")`, doc.JS())
	assert.Contains(t, r.Last(), `var o = Application("TextEdit").Document({"text": "hello"});`)

	_, err = app.NewDocument(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `Application("TextEdit").Document({})`)
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	app, r := openTextEdit(t)
	doc := app.FrontDocument()

	tests := []struct {
		name string
		run  func() error
		want string
	}{
		{"append", func() error { return doc.Append(ctx, "\nbye") }, `d.text = d.text() + "\nbye";`},
		{"prepend", func() error { return doc.Prepend(ctx, "# ") }, `d.text = "# " + d.text();`},
		{"set", func() error { return doc.SetText(ctx, "x") }, `Application("TextEdit").documents[0].text = "x";`},
		{"save as", func() error { return doc.SaveAs(ctx, "/tmp/a.rtf") }, `Application("TextEdit").save(Application("TextEdit").documents[0], {"in": Path("/tmp/a.rtf")})`},
		{"close", func() error { return doc.Close(ctx, SaveNo) }, `Application("TextEdit").close(Application("TextEdit").documents[0], {"saving": "no"})`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.run())
			assert.Contains(t, r.Last(), tt.want)
		})
	}

	assert.Error(t, doc.SaveAs(ctx, ""))
}

func TestOpenFile(t *testing.T) {
	ctx := context.Background()
	app, r := openTextEdit(t)

	r.Reply(osatest.Ref(`Application("TextEdit").documents.byName("notes.txt")`))
	doc, err := app.OpenFile(ctx, "/tmp/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, `Application("TextEdit").documents.byName("notes.txt")`, doc.JS())
	assert.Contains(t, r.Last(), `Application("TextEdit").open(Path("/tmp/notes.txt"))`)

	r.Reply([]string{"one", "two"})
	words, err := doc.Words(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, words)
}
