package xa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/osa"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, wrap("get name", "Safari", nil))

	tests := []struct {
		name string
		err  error
		is   error
		code int
		hint bool
	}{
		{"not running", &osa.ScriptError{Code: osa.CodeNotRunning, Message: "Application isn't running."}, ErrNotRunning, osa.CodeNotRunning, true},
		{"timeout", &osa.ScriptError{Code: osa.CodeTimeout, Message: "AppleEvent timed out."}, ErrTimeout, osa.CodeTimeout, true},
		{"no such object", &osa.ScriptError{Code: osa.CodeNoSuchObject, Message: "Can't get object."}, ErrNoSuchObject, osa.CodeNoSuchObject, false},
		{"not understood", &osa.ScriptError{Message: "Application(\"Safari\").frob is not a function"}, ErrNotUnderstood, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrap("op", "Safari", tt.err)
			assert.ErrorIs(t, err, tt.is)
			assert.ErrorIs(t, err, ErrScript)
			var xe *Error
			require.ErrorAs(t, err, &xe)
			assert.Equal(t, tt.code, xe.Code)
			assert.Equal(t, tt.hint, xe.Help != "")
		})
	}
}

func TestWrapAuthorization(t *testing.T) {
	err := wrap("get name", "Notes", &osa.ScriptError{Code: osa.CodeNotAuthorized, Message: "Not authorized to send Apple events to Notes."})
	var ae *AuthenticationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Notes", ae.App)
	assert.Equal(t, "Not authorized to send Apple events to Notes.", ae.Error())
	assert.ErrorIs(t, err, ErrNotAuthorized)

	var xe *Error
	require.ErrorAs(t, err, &xe)
	assert.Equal(t, osa.CodeNotAuthorized, xe.Code)
	assert.Contains(t, xe.Error(), "xa doctor")

	// Without an application the cause is kept as is.
	err = wrap("run JXA", "", &osa.ScriptError{Code: osa.CodeNotAuthorized})
	assert.False(t, errors.As(err, &ae))
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestWrapKeepsError(t *testing.T) {
	orig := &Error{Op: "inner", Err: errors.New("x")}
	assert.Same(t, orig, wrap("outer", "", orig))
}

func TestErrorFormat(t *testing.T) {
	e := &Error{Op: "launch Notes", Err: errors.New("boom")}
	assert.Equal(t, "xa: launch Notes: boom", e.Error())
	e.Help = "try again"
	assert.Equal(t, "xa: launch Notes: boom\n  hint: try again", e.Error())

	assert.Equal(t, "Application Foo not found.", (&ApplicationNotFoundError{Name: "Foo"}).Error())
	assert.Equal(t, "Could not create new tab.", (&UnconstructableClassError{Class: "tab"}).Error())
	cause := errors.New("denied")
	uce := &UnconstructableClassError{Class: "tab", Err: cause}
	assert.ErrorIs(t, uce, cause)
}
