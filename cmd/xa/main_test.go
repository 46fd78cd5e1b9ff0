package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa"
	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func execute(t *testing.T, sess *xa.Session, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&cli{sess: sess})
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newTestSession(t *testing.T) (*xa.Session, *osatest.Runner, *xatest.Workspace) {
	t.Helper()
	return xatest.NewSession(
		xatest.Running("Safari", "com.apple.Safari", 101),
		xatest.Running("TextEdit", "com.apple.TextEdit", 102),
	)
}

func TestApps(t *testing.T) {
	sess, _, _ := newTestSession(t)
	out, err := execute(t, sess, "", "apps", "-o", "json")
	require.NoError(t, err)

	var adapters []xa.Adapter
	require.NoError(t, json.Unmarshal([]byte(out), &adapters))
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name
	}
	assert.Contains(t, names, "Safari")
	assert.Contains(t, names, "System Events")

	out, err = execute(t, sess, "", "apps")
	require.NoError(t, err)
	assert.Contains(t, out, "BUNDLE ID")
	assert.Contains(t, out, "com.apple.iCal")
}

func TestRunningAndFrontmost(t *testing.T) {
	sess, _, ws := newTestSession(t)
	ws.Front = xatest.Running("TextEdit", "com.apple.TextEdit", 102)

	out, err := execute(t, sess, "", "running", "--all", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Safari")
	assert.Contains(t, out, "bundle_id: com.apple.TextEdit")

	out, err = execute(t, sess, "", "frontmost")
	require.NoError(t, err)
	assert.Contains(t, out, "TextEdit")
	assert.Contains(t, out, "102")
}

func TestLifecycle(t *testing.T) {
	sess, r, ws := newTestSession(t)

	_, err := execute(t, sess, "", "quit", "Safari")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `Application("Safari").quit()`)

	_, err = execute(t, sess, "", "quit", "--force", "--wait", "com.apple.TextEdit")
	require.NoError(t, err)
	assert.Equal(t, []int{102}, ws.Terminated)

	_, err = execute(t, sess, "", "hide", "Safari")
	require.NoError(t, err)
	assert.Equal(t, []int{101}, ws.Hidden)

	_, err = execute(t, sess, "", "activate", "Notes")
	assert.ErrorContains(t, err, "Notes is not running")
	assert.Empty(t, ws.Launched)

	_, err = execute(t, sess, "", "launch", "--background", "Notes")
	require.NoError(t, err)
	assert.Equal(t, []string{"/Applications/Notes.app"}, ws.Launched)
}

func TestWindows(t *testing.T) {
	sess, _, ws := newTestSession(t)
	ws.WindowList = []xa.WindowInfo{
		{ID: 1, OwnerPID: 101, OwnerName: "Safari", Name: "Docs", OnScreen: true, Width: 800, Height: 600},
		{ID: 2, OwnerPID: 102, OwnerName: "TextEdit", Name: "notes.txt", OnScreen: true},
	}

	out, err := execute(t, sess, "", "windows", "Safari", "-o", "json")
	require.NoError(t, err)
	var windows []xa.WindowInfo
	require.NoError(t, json.Unmarshal([]byte(out), &windows))
	require.Len(t, windows, 1)
	assert.Equal(t, "Docs", windows[0].Name)

	out, err = execute(t, sess, "", "windows")
	require.NoError(t, err)
	assert.Contains(t, out, "800x600+0+0")
	assert.Contains(t, out, "notes.txt")
}

func TestGetSet(t *testing.T) {
	sess, r, _ := newTestSession(t)

	r.Reply("Docs")
	out, err := execute(t, sess, "", "get", "Safari", "windows[0]", "name")
	require.NoError(t, err)
	assert.Equal(t, "Docs\n", out)
	assert.Contains(t, r.Last(), `return Application("Safari").windows[0].name();`)

	r.Reply(3).Reply(true)
	out, err = execute(t, sess, "", "get", "Safari", ".", "version", "frontmost", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version": 3, "frontmost": true}`, out)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"TextEdit", "documents[0]", "text", "hello"}, `Application("TextEdit").documents[0].text = "hello";`},
		{[]string{"TextEdit", "windows[0]", "visible", "false"}, `Application("TextEdit").windows[0].visible = false;`},
		{[]string{"--string", "TextEdit", "documents[0]", "text", "42"}, `Application("TextEdit").documents[0].text = "42";`},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, err := execute(t, sess, "", append([]string{"set"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, r.Last(), tt.want)
		})
	}
}

func TestList(t *testing.T) {
	sess, r, _ := newTestSession(t)

	r.Reply([]string{"Docs", "News"}).Reply([]int{7, 9})
	out, err := execute(t, sess, "", "list", "Safari", "windows", "name", "id", "--where", "visible == TRUE")
	require.NoError(t, err)
	assert.Contains(t, out, "Docs")
	assert.Contains(t, out, "9")
	assert.True(t, r.Contains(`Application("Safari").windows.whose({"visible": {"_equals": true}}).name()`))
	assert.True(t, r.Contains(`.whose({"visible": {"_equals": true}}).id()`))

	r.Reply([]string{"a"})
	_, err = execute(t, sess, "", "list", "TextEdit", "documents[0].paragraphs", "text")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `Application("TextEdit").documents[0].paragraphs.text()`)

	_, err = execute(t, sess, "", "list", "Safari", "windows", "name", "--where", "name ==")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	sess, r, _ := newTestSession(t)

	r.Reply(2)
	out, err := execute(t, sess, "", "run", "-e", "return 1 + 1;")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	r.Reply("Finder")
	out, err = execute(t, sess, `return Application("Finder").name();`, "run", "-")
	require.NoError(t, err)
	assert.Equal(t, "Finder\n", out)
	assert.Contains(t, r.Last(), `return Application("Finder").name();`)

	r.ReplyRaw("hello\n")
	out, err = execute(t, sess, "", "run", "-l", "AppleScript", "-e", `return "hello"`)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	_, err = execute(t, sess, "", "run")
	assert.Error(t, err)
	_, err = execute(t, sess, "", "run", "-l", "Python", "-e", "x")
	assert.ErrorContains(t, err, "unknown language")
}

func TestEvent(t *testing.T) {
	sess, r, _ := newTestSession(t)

	out, err := execute(t, sess, "", "event", "aevt", "odoc", "--bundle", "com.apple.TextEdit", "--direct", "file:/tmp/a.txt", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, `tell application id "com.apple.TextEdit"`)
	assert.Contains(t, out, `«event aevtodoc» POSIX file "/tmp/a.txt"`)
	assert.Zero(t, r.Count())

	_, err = execute(t, sess, "", "event", "kCoreEventClass", "kAEQuitApplication", "--bundle", "com.apple.TextEdit", "--no-reply")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), "ignoring application responses")
	assert.Contains(t, r.Last(), "«event aevtquit»")

	_, err = execute(t, sess, "", "event", "aevt", "quit")
	assert.ErrorContains(t, err, "--bundle")
	_, err = execute(t, sess, "", "event", "aevt", "toolong", "--bundle", "x")
	assert.Error(t, err)
}

func TestPower(t *testing.T) {
	sess, r, _ := newTestSession(t)

	_, err := execute(t, sess, "", "power", "sleep")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `tell application id "com.apple.loginwindow"`)
	assert.Contains(t, r.Last(), "«event aevtslep»")

	_, err = execute(t, sess, "", "power", "nap")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	sess, _, _ := newTestSession(t)

	_, err := execute(t, sess, "", "keys", "cmd+nosuchkey")
	assert.Error(t, err)
	_, err = execute(t, sess, "", "keys")
	assert.ErrorContains(t, err, "nothing to press")

	out, err := execute(t, sess, "", "keys", "--list", "-o", "json")
	require.NoError(t, err)
	var keys []string
	require.NoError(t, json.Unmarshal([]byte(out), &keys))
	assert.Contains(t, keys, "return")
}

func TestSdef(t *testing.T) {
	sess, _, _ := newTestSession(t)
	file := filepath.Join("..", "..", "sdef", "testdata", "textedit.sdef")

	out, err := execute(t, sess, "", "sdef", "dump", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "close")
	assert.Contains(t, out, "[saving]")

	out, err = execute(t, sess, "", "sdef", "dump", "--file", file, "--kind", "enums")
	require.NoError(t, err)
	assert.Contains(t, out, "save options")

	out, err = execute(t, sess, "", "sdef", "gen", "--file", file, "--package", "textedit")
	require.NoError(t, err)
	assert.Contains(t, out, "package textedit")

	_, err = execute(t, sess, "", "sdef", "dump", "--file", file, "--kind", "nope")
	assert.Error(t, err)
	_, err = execute(t, sess, "", "sdef", "dump")
	assert.Error(t, err)

	bundle := filepath.Join(t.TempDir(), "Plain.app")
	require.NoError(t, os.MkdirAll(filepath.Join(bundle, "Contents"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bundle, "Contents", "Info.plist"), []byte(`<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>com.example.Plain</string>
</dict>
</plist>
`), 0o644))
	_, err = execute(t, sess, "", "sdef", "dump", bundle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not scriptable")
}

func newTCCDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "TCC.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE access (
		service TEXT NOT NULL,
		client TEXT NOT NULL,
		client_type INTEGER NOT NULL,
		auth_value INTEGER NOT NULL,
		auth_reason INTEGER NOT NULL,
		indirect_object_identifier TEXT,
		last_modified INTEGER
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO access VALUES
		('kTCCServiceAppleEvents', 'com.apple.Terminal', 0, 2, 3, 'com.apple.Safari', 1700000000),
		('kTCCServiceAppleEvents', 'com.apple.Terminal', 0, 0, 3, 'com.apple.Notes', 1700000000)`)
	require.NoError(t, err)
	return path
}

func TestDoctor(t *testing.T) {
	r := osatest.New()
	ws := xatest.NewWorkspace()
	cfg := xa.NewConfig().WithTCCDatabase(newTCCDB(t))
	sess := xa.NewSession(cfg, xa.WithRunner(r), xa.WithWorkspace(ws))

	out, err := execute(t, sess, "", "doctor", "--client", "com.apple.Terminal", "-o", "json")
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Automation, 2)
	assert.Equal(t, "com.apple.Notes", rep.Automation[0].Target)
	assert.False(t, rep.Automation[0].Allowed)
	assert.True(t, rep.Automation[1].Allowed)

	status := map[string]string{}
	for _, c := range rep.Checks {
		status[c.Name] = c.Status
	}
	assert.Equal(t, statusOK, status["tcc"])
	assert.Equal(t, statusOK, status["adapters"])

	out, err = execute(t, sess, "", "doctor", "--client", "com.example.none")
	require.NoError(t, err)
	assert.Contains(t, out, "has not been asked")

	_, err = execute(t, sess, "", "doctor", "--reset", "--client", "")
	assert.ErrorContains(t, err, "--reset needs --client")
}

func TestDoctorNoDatabase(t *testing.T) {
	cfg := xa.NewConfig().WithTCCDatabase(filepath.Join(t.TempDir(), "missing.db"))
	sess := xa.NewSession(cfg, xa.WithRunner(osatest.New()), xa.WithWorkspace(xatest.NewWorkspace()))

	out, err := execute(t, sess, "", "doctor", "--client", "", "-o", "json")
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	var tcc check
	for _, c := range rep.Checks {
		if c.Name == "tcc" {
			tcc = c
		}
	}
	assert.Equal(t, statusWarn, tcc.Status)
	assert.Contains(t, tcc.Detail, "Full Disk Access")
}

func TestDesktopCommands(t *testing.T) {
	sess, r, ws := newTestSession(t)

	_, err := execute(t, sess, "", "open", "https://example.com", "/tmp/a.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com", "file:///tmp/a.txt"}, ws.Opened)

	_, err = execute(t, sess, "", "open", "--app", "TextEdit", "/tmp/a.txt")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `Application("TextEdit").open([Path("/tmp/a.txt")])`)

	_, err = execute(t, sess, "", "notify", "Build finished", "--title", "CI")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `displayNotification("Build finished", {"withTitle": "CI"})`)

	r.Reply(map[string]any{"buttonReturned": "Yes"})
	out, err := execute(t, sess, "", "dialog", "Continue?", "--button", "No", "--button", "Yes")
	require.NoError(t, err)
	assert.Equal(t, "Yes\n", out)
	assert.Contains(t, r.Last(), `displayDialog("Continue?", {"buttons": ["No", "Yes"]})`)

	r.Reply(map[string]any{"buttonReturned": "OK", "textReturned": "Ada"})
	out, err = execute(t, sess, "", "dialog", "Name?", "--input", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"button": "OK", "text": "Ada"}`, out)

	r.Reply("copied")
	out, err = execute(t, sess, "", "clipboard", "get")
	require.NoError(t, err)
	assert.Equal(t, "copied\n", out)

	_, err = execute(t, sess, "pasted\n", "clipboard", "set")
	require.NoError(t, err)
	assert.Contains(t, r.Last(), `app.setTheClipboardTo("pasted");`)
}

func TestHelpers(t *testing.T) {
	t.Run("specPath", func(t *testing.T) {
		root := `Application("Notes")`
		for path, want := range map[string]string{
			"":                     root,
			".":                    root,
			"[0]":                  root + "[0]",
			"notes[0]":             root + ".notes[0]",
			`.folders.byName("x")`: root + `.folders.byName("x")`,
		} {
			assert.Equal(t, want, specPath(root, path), path)
		}
	})

	t.Run("splitCollection", func(t *testing.T) {
		parent, name, err := splitCollection(`folders.byName("Notes").notes`)
		require.NoError(t, err)
		assert.Equal(t, `folders.byName("Notes")`, parent)
		assert.Equal(t, "notes", name)

		parent, name, err = splitCollection("windows")
		require.NoError(t, err)
		assert.Equal(t, "", parent)
		assert.Equal(t, "windows", name)

		_, _, err = splitCollection(`folders.byName("a.b")`)
		assert.Error(t, err)
	})

	t.Run("parseLiteral", func(t *testing.T) {
		assert.Equal(t, true, parseLiteral("true"))
		assert.Equal(t, float64(3), parseLiteral("3"))
		assert.Equal(t, []any{"a"}, parseLiteral(`["a"]`))
		assert.Equal(t, "hello world", parseLiteral("hello world"))
	})

	t.Run("eventValue", func(t *testing.T) {
		assert.Equal(t, 42, eventValue("42"))
		assert.Equal(t, false, eventValue("false"))
		assert.Equal(t, "hi", eventValue("hi"))
		assert.EqualValues(t, "/tmp/x", eventValue("file:/tmp/x"))
	})
}

func TestOutputFormat(t *testing.T) {
	r := result{
		data:    []map[string]string{{"name": "Docs"}},
		headers: []string{"NAME"},
		rows:    [][]string{{"Docs"}},
	}
	tests := []struct {
		format format
		want   string
	}{
		{formatJSON, "[\n  {\n    \"name\": \"Docs\"\n  }\n]\n"},
		{formatYAML, "- name: Docs\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var b bytes.Buffer
			require.NoError(t, render(&b, tt.format, r))
			assert.Equal(t, tt.want, b.String())
		})
	}

	var b bytes.Buffer
	require.NoError(t, render(&b, formatTable, r))
	assert.Contains(t, b.String(), "NAME")
	assert.Contains(t, b.String(), "Docs")

	sess, _, _ := newTestSession(t)
	_, err := execute(t, sess, "", "apps", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}
