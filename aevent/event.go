package aevent

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tmc/xa/osa"
)

// SendMode holds AESend flags. Events are sent by osascript, so only some
// flags change the rendered script:
//
//   - NoReply and QueueReply wrap the event in "ignoring application
//     responses".
//   - CanSwitchLayer activates the target before sending, so it can come
//     forward to interact with the user.
//   - DontExecute is refused by Script.
//
// The interaction level, DontReconnect, WantReceipt and DontRecord are
// chosen by osascript itself and have no effect.
type SendMode int

const (
	NoReply        SendMode = 1
	QueueReply     SendMode = 2
	WaitReply      SendMode = 3
	DontReconnect  SendMode = 128
	WantReceipt    SendMode = 512
	NeverInteract  SendMode = 16
	CanInteract    SendMode = 32
	AlwaysInteract SendMode = 48
	CanSwitchLayer SendMode = 64
	DontRecord     SendMode = 4096
	DontExecute    SendMode = 8192
)

const replyMask = 3

// Reply returns the reply bits of m.
func (m SendMode) Reply() SendMode { return m & replyMask }

// Timeouts understood by Event.Timeout besides positive durations.
const (
	DefaultTimeout time.Duration = -1
	NoTimeout      time.Duration = -2
)

// File is a POSIX path passed as a file reference.
type File string

// Enum is an enumerated constant parameter.
type Enum OSType

// Event is a raw Apple Event addressed to an application by bundle id.
type Event struct {
	Class  OSType
	ID     OSType
	Target string

	// Direct is the direct parameter, nil for none.
	Direct any
	// Params holds keyword parameters.
	Params map[OSType]any

	// Mode defaults to WaitReply.
	Mode SendMode
	// Timeout of zero uses DefaultTimeout.
	Timeout time.Duration
}

// New returns an event of the given class and id for bundleID.
func New(class, id OSType, bundleID string) *Event {
	return &Event{Class: class, ID: id, Target: bundleID}
}

// WithDirect sets the direct parameter.
func (e *Event) WithDirect(v any) *Event {
	e.Direct = v
	return e
}

// WithParam sets a keyword parameter.
func (e *Event) WithParam(key OSType, v any) *Event {
	if e.Params == nil {
		e.Params = make(map[OSType]any)
	}
	e.Params[key] = v
	return e
}

// WithMode sets the send mode.
func (e *Event) WithMode(m SendMode) *Event {
	e.Mode = m
	return e
}

// WithTimeout sets the reply timeout.
func (e *Event) WithTimeout(d time.Duration) *Event {
	e.Timeout = d
	return e
}

// Script renders e as raw AppleScript using chevron syntax.
func (e *Event) Script() (string, error) {
	if e.Target == "" {
		return "", fmt.Errorf("aevent: event %s%s has no target", e.Class, e.ID)
	}
	if e.Mode&DontExecute != 0 {
		return "", fmt.Errorf("aevent: event %s%s: DontExecute cannot be sent through osascript", e.Class, e.ID)
	}
	call := "«event " + e.Class.String() + e.ID.String() + "»"
	if e.Direct != nil {
		lit, err := literal(e.Direct)
		if err != nil {
			return "", fmt.Errorf("aevent: direct parameter: %w", err)
		}
		call += " " + lit
	}
	if len(e.Params) > 0 {
		keys := make([]OSType, 0, len(e.Params))
		for k := range e.Params {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		given := make([]string, 0, len(keys))
		for _, k := range keys {
			lit, err := literal(e.Params[k])
			if err != nil {
				return "", fmt.Errorf("aevent: parameter %s: %w", k, err)
			}
			given = append(given, k.Chevron()+":"+lit)
		}
		call += " given " + strings.Join(given, ", ")
	}

	var b strings.Builder
	depth := 0
	line := func(s string) {
		b.WriteString(strings.Repeat("\t", depth))
		b.WriteString(s)
		b.WriteByte('\n')
	}
	var closers []string
	open := func(start, end string) {
		line(start)
		closers = append(closers, end)
		depth++
	}

	switch {
	case e.Timeout > 0:
		secs := int((e.Timeout + time.Second - 1) / time.Second)
		open("with timeout of "+strconv.Itoa(secs)+" seconds", "end timeout")
	case e.Timeout == NoTimeout:
		// An hour is as long as osascript will sensibly wait.
		open("with timeout of 3600 seconds", "end timeout")
	}
	if e.Mode.Reply() == NoReply || e.Mode.Reply() == QueueReply {
		open("ignoring application responses", "end ignoring")
	}
	open("tell application id "+osa.AppleScriptString(e.Target), "end tell")
	if e.Mode&CanSwitchLayer != 0 {
		line("activate")
	}
	line(call)
	for i := len(closers) - 1; i >= 0; i-- {
		depth--
		line(closers[i])
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Send renders e and runs it with r. It returns the event's result as
// AppleScript prints it.
func Send(ctx context.Context, r osa.Runner, e *Event) (string, error) {
	src, err := e.Script()
	if err != nil {
		return "", err
	}
	out, err := osa.RunAppleScript(ctx, r, src)
	if err != nil {
		return "", fmt.Errorf("aevent: send %s%s to %s: %w", e.Class, e.ID, e.Target, err)
	}
	return out, nil
}

func literal(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "missing value", nil
	case string:
		return osa.AppleScriptString(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case File:
		return "POSIX file " + osa.AppleScriptString(string(x)), nil
	case Enum:
		return "«constant ****" + OSType(x).String() + "»", nil
	case OSType:
		return x.Chevron(), nil
	case []File:
		items := make([]any, len(x))
		for i, f := range x {
			items[i] = f
		}
		return literal(items)
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return literal(items)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			s, err := literal(item)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	}
	return "", fmt.Errorf("unsupported parameter type %T", v)
}
