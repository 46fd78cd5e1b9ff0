package osa_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/osa"
	"github.com/tmc/xa/osa/osatest"
)

func TestParseError(t *testing.T) {
	cause := errors.New("exit status 1")
	tests := []struct {
		name    string
		stderr  string
		code    int
		message string
		is      error
	}{
		{
			name:    "jxa",
			stderr:  "execution error: Error: Error: Can't get object. (-1728)",
			code:    -1728,
			message: "Can't get object.",
			is:      osa.ErrNoSuchObject,
		},
		{
			name:    "applescript",
			stderr:  "14:20: execution error: Safari got an error: Can't get window 1. Invalid index. (-1719)\n",
			code:    -1719,
			message: "Safari got an error: Can't get window 1. Invalid index.",
			is:      osa.ErrNoSuchObject,
		},
		{
			name:    "not authorized",
			stderr:  "execution error: Not authorized to send Apple events to Safari. (-1743)",
			code:    -1743,
			message: "Not authorized to send Apple events to Safari.",
			is:      osa.ErrNotAuthorized,
		},
		{
			name:    "syntax",
			stderr:  "-:10:15: script error: Expected end of line but found identifier. (-2741)",
			code:    -2741,
			message: "Expected end of line but found identifier.",
			is:      osa.ErrScript,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := osa.ParseError(tt.stderr, cause)
			var se *osa.ScriptError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.message, se.Message)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestParseErrorUnrecognized(t *testing.T) {
	cause := errors.New("exit status 1")
	err := osa.ParseError("something odd", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "something odd")

	err = osa.ParseError("", cause)
	assert.ErrorIs(t, err, cause)
}

func TestScriptErrorIs(t *testing.T) {
	err := &osa.ScriptError{Code: osa.CodeNotRunning, Message: "Application isn't running."}
	assert.ErrorIs(t, err, osa.ErrNotRunning)
	assert.NotErrorIs(t, err, osa.ErrTimeout)

	err = &osa.ScriptError{Message: "Application(\"Safari\").windows[0].foo is not a function"}
	assert.ErrorIs(t, err, osa.ErrNotUnderstood)

	err = &osa.ScriptError{Code: osa.CodeNotSettable}
	assert.ErrorIs(t, err, osa.ErrNotSettable)
}

func TestProgramWrapsBody(t *testing.T) {
	s := osa.Program("var a = 1;\nreturn a + 1;")
	assert.Equal(t, osa.JavaScript, s.Language)
	assert.Contains(t, s.Source, "function run(argv)")
	assert.Contains(t, s.Source, "\t\t\tvar a = 1;\n\t\t\treturn a + 1;")
	assert.Contains(t, s.Source, "Automation.getDisplayString")
}

func TestDecode(t *testing.T) {
	raw, err := osa.Decode([]byte(`{"ok":{"name":"Safari"}}` + "\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Safari"}`, string(raw))

	raw, err = osa.Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	_, err = osa.Decode([]byte(`{"$error":{"number":-1728,"message":"Error: Can't get object."}}`))
	var se *osa.ScriptError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Can't get object.", se.Message)
	assert.ErrorIs(t, err, osa.ErrNoSuchObject)

	_, err = osa.Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestRunJXA(t *testing.T) {
	r := osatest.New()
	r.Reply([]string{"a", "b"})

	raw, err := osa.RunJXA(context.Background(), r, `return ["a", "b"];`, "x")
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(raw))

	scripts := r.Scripts()
	require.Len(t, scripts, 1)
	assert.Equal(t, []string{"x"}, scripts[0].Args)
	assert.Contains(t, scripts[0].Source, `return ["a", "b"];`)
}

func TestRunAppleScript(t *testing.T) {
	r := osatest.New()
	r.ReplyRaw("hello\n")
	out, err := osa.RunAppleScript(context.Background(), r, `return "hello"`)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, osa.AppleScript, r.Scripts()[0].Language)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"say \"hi\"\n"`, osa.JSString("say \"hi\"\n"))
	assert.Equal(t, `"a\\b \"c\"\n"`, osa.AppleScriptString("a\\b \"c\"\n"))

	assert.NoError(t, osa.JSIdent("currentTab"))
	assert.NoError(t, osa.JSIdent("_private$"))
	for _, bad := range []string{"", "1abc", "a-b", "a b", "x();"} {
		assert.Error(t, osa.JSIdent(bad), bad)
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	r := osatest.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, osa.Script{Source: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, r.Count())
	assert.False(t, strings.Contains(r.Last(), "x"))
}
