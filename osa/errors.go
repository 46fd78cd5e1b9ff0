package osa

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OSA and Apple Event Manager error numbers that get their own sentinel.
const (
	CodeCanceled       = -128
	CodeNotRunning     = -600
	CodeNotUnderstood  = -1708
	CodeTimeout        = -1712
	CodeNoSuchObject   = -1728
	CodeInvalidIndex   = -1719
	CodeNotAuthorized  = -1743
	CodeNotAllowed     = -10003
	CodeNotSettable    = -10006
	CodeSyntax         = -2741
	CodeCantConvert    = -1700
	CodeAppNotFound    = -10814
	CodeHandlerFailure = -10000
)

var (
	ErrCanceled      = errors.New("user canceled")
	ErrNotRunning    = errors.New("application is not running")
	ErrNotUnderstood = errors.New("message not understood")
	ErrTimeout       = errors.New("apple event timed out")
	ErrNoSuchObject  = errors.New("no such object")
	ErrNotAuthorized = errors.New("not authorized to send apple events")
	ErrNotSettable   = errors.New("property cannot be set")
	ErrScript        = errors.New("script error")
)

// ScriptError is a failure reported by the OSA component or by the target
// application while running a script.
type ScriptError struct {
	Code    int
	Message string
}

func (e *ScriptError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (%d)", e.Message, e.Code)
	}
	return e.Message
}

// Is maps error numbers onto the package sentinels.
func (e *ScriptError) Is(target error) bool {
	switch target {
	case ErrCanceled:
		return e.Code == CodeCanceled
	case ErrNotRunning:
		return e.Code == CodeNotRunning || e.Code == CodeAppNotFound
	case ErrNotUnderstood:
		return e.Code == CodeNotUnderstood || (e.Code == 0 && notAFunction(e.Message))
	case ErrTimeout:
		return e.Code == CodeTimeout
	case ErrNoSuchObject:
		return e.Code == CodeNoSuchObject || e.Code == CodeInvalidIndex
	case ErrNotAuthorized:
		return e.Code == CodeNotAuthorized
	case ErrNotSettable:
		return e.Code == CodeNotSettable || e.Code == CodeNotAllowed
	case ErrScript:
		return true
	}
	return false
}

func notAFunction(msg string) bool {
	return strings.Contains(msg, "is not a function") || strings.Contains(msg, "is undefined")
}

var errorLine = regexp.MustCompile(`(?:execution|script) error: (.*?)(?: \((-?\d+)\))?\s*$`)

// ParseError builds a ScriptError from osascript's standard error. The
// returned error wraps cause when the output cannot be parsed.
func ParseError(stderr string, cause error) error {
	stderr = strings.TrimSpace(stderr)
	m := errorLine.FindStringSubmatch(stderr)
	if m == nil {
		if stderr == "" {
			return fmt.Errorf("osascript: %w", cause)
		}
		return fmt.Errorf("osascript: %s: %w", stderr, cause)
	}
	se := &ScriptError{Message: cleanMessage(m[1])}
	if m[2] != "" {
		se.Code, _ = strconv.Atoi(m[2])
	}
	return se
}

// cleanMessage strips the "Error: Error: " chains JXA adds to rethrown errors.
func cleanMessage(msg string) string {
	for strings.HasPrefix(msg, "Error: ") {
		msg = strings.TrimPrefix(msg, "Error: ")
	}
	return strings.TrimSpace(msg)
}
