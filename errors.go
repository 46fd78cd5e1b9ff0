package xa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/xa/osa"
	"github.com/tmc/xa/predicate"
)

// Error represents an xa error with additional context and actionable guidance.
type Error struct {
	Op   string // Operation that failed (e.g., "get name", "launch Safari")
	Err  error  // Underlying error
	Help string // Actionable guidance for the user
	Code int    // OSA error number, or 0
}

func (e *Error) Error() string {
	if e.Help != "" {
		return fmt.Sprintf("xa: %s: %v\n  hint: %s", e.Op, e.Err, e.Help)
	}
	return fmt.Sprintf("xa: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errors reported by scripts, classified from their OSA error number.
// Match them with errors.Is.
var (
	ErrScript        = osa.ErrScript
	ErrCanceled      = osa.ErrCanceled
	ErrNotRunning    = osa.ErrNotRunning
	ErrNotUnderstood = osa.ErrNotUnderstood
	ErrTimeout       = osa.ErrTimeout
	ErrNoSuchObject  = osa.ErrNoSuchObject
	ErrNotAuthorized = osa.ErrNotAuthorized
	ErrNotSettable   = osa.ErrNotSettable
)

// ErrUnsupported is returned by workspace operations on other platforms.
var ErrUnsupported = errors.New("xa: not supported on this platform")

// InvalidPredicateError reports a predicate that cannot be built or rendered.
type InvalidPredicateError = predicate.InvalidPredicateError

// ApplicationNotFoundError reports that no application with the requested
// name could be located on disk.
type ApplicationNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *ApplicationNotFoundError) Error() string {
	msg := fmt.Sprintf("Application %s not found.", e.Name)
	if len(e.Suggestions) > 0 {
		msg += " Did you mean: " + strings.Join(e.Suggestions, ", ") + "?"
	}
	return msg
}

// AuthenticationError reports that the user has not allowed this process
// to send Apple events to an application.
type AuthenticationError struct {
	App string
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("Not authorized to send Apple events to %s.", e.App)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Is reports ErrNotAuthorized for errors that did not come from a script.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrNotAuthorized
}

// UnconstructableClassError reports that an application refused to make a
// new object of the given class.
type UnconstructableClassError struct {
	Class string
	Err   error
}

func (e *UnconstructableClassError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Could not create new %s: %v", e.Class, e.Err)
	}
	return fmt.Sprintf("Could not create new %s.", e.Class)
}

func (e *UnconstructableClassError) Unwrap() error { return e.Err }

// wrap annotates err with op, the OSA error number and a hint. app names
// the target application for authorization failures. It returns nil for a
// nil err and leaves an *Error untouched.
func wrap(op, app string, err error) error {
	if err == nil {
		return nil
	}
	var xe *Error
	if errors.As(err, &xe) {
		return err
	}
	e := &Error{Op: op, Err: err, Help: hint(err)}
	var se *osa.ScriptError
	if errors.As(err, &se) {
		e.Code = se.Code
	}
	if app != "" && errors.Is(err, ErrNotAuthorized) {
		var ae *AuthenticationError
		if !errors.As(err, &ae) {
			e.Err = &AuthenticationError{App: app, Err: err}
		}
	}
	return e
}

func hint(err error) string {
	switch {
	case errors.Is(err, ErrNotAuthorized):
		return "allow this program under System Settings > Privacy & Security > Automation, or run 'xa doctor'"
	case errors.Is(err, ErrNotRunning):
		return "the application quit or was never launched; use Session.Application to start it"
	case errors.Is(err, ErrTimeout):
		return "the application did not answer in time; raise XA_SCRIPT_TIMEOUT if it is busy"
	case errors.Is(err, ErrNotUnderstood):
		return "check the application's scripting dictionary with 'xa sdef dump'"
	}
	return ""
}
