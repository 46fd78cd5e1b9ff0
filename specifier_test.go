package xa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecifierBuild(t *testing.T) {
	tests := []struct {
		name string
		spec Specifier
		want string
	}{
		{"root", AppSpecifier("Safari"), `Application("Safari")`},
		{"property", AppSpecifier("Safari").Property("windows").Index(0).Property("currentTab"), `Application("Safari").windows[0].currentTab`},
		{"by name", AppSpecifier("Notes").Elements("folders").ByName(`My "Notes"`), `Application("Notes").folders.byName("My \"Notes\"")`},
		{"by numeric id", AppSpecifier("Safari").Elements("windows").ByID(42), `Application("Safari").windows.byId(42)`},
		{"by string id", AppSpecifier("Notes").Elements("notes").ByID("x-coredata://1"), `Application("Notes").notes.byId("x-coredata://1")`},
		{"whose", AppSpecifier("Mail").Elements("mailboxes").Whose(`{"name": {"_equals": "Inbox"}}`), `Application("Mail").mailboxes.whose({"name": {"_equals": "Inbox"}})`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.String())
			assert.Equal(t, tt.want, tt.spec.JS())
		})
	}

	s := AppSpecifier("Safari").Elements("windows").Index(0)
	assert.False(t, s.IsRoot())
	assert.True(t, s.Root().IsRoot())
	assert.Equal(t, `Application("Safari")`, s.Root().String())
	assert.Equal(t, `Application("Safari").windows[0].close()`, s.Call("close"))
	assert.Equal(t, `Application("Safari").doJavaScript("1", x)`, s.Root().Call("doJavaScript", `"1"`, "x"))
	assert.True(t, Specifier{}.IsZero())
}

func TestParseSpecifier(t *testing.T) {
	tests := []struct {
		in, app, str string
		root         bool
	}{
		{`Application("Notes")`, "Notes", `Application("Notes")`, true},
		{`Application("Notes").accounts.byId("x(1)").folders`, "Notes", `Application("Notes").accounts.byId("x(1)").folders`, false},
		{`Application("A(\")").windows[0]`, `A(")`, `Application("A(\")").windows[0]`, false},
		{`  Application("Finder").startupDisk  `, "Finder", `Application("Finder").startupDisk`, false},
		{`Path("/tmp")`, "", `Path("/tmp")`, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s, err := ParseSpecifier(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.app, s.AppName())
			assert.Equal(t, tt.str, s.String())
			assert.Equal(t, tt.root, s.IsRoot())
		})
	}

	_, err := ParseSpecifier("")
	assert.Error(t, err)
	_, err = ParseSpecifier(`Application("Notes"`)
	assert.Error(t, err)
}
