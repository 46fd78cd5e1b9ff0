// Package dialog shows the user-interaction commands of the scripting
// standard additions: dialogs, alerts, notifications, pickers and speech.
//
// Every call blocks until the user answers. Dismissing a dialog with its
// cancel button returns an error matching xa.ErrCanceled.
package dialog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/xa"
)

const prologue = "var app = Application.currentApplication();\napp.includeStandardAdditions = true;\n"

// Icon is a dialog icon.
type Icon string

const (
	IconNone    Icon = ""
	IconStop    Icon = "stop"
	IconNote    Icon = "note"
	IconCaution Icon = "caution"
)

// Dialog describes a display dialog call.
type Dialog struct {
	Text          string
	Title         string
	Buttons       []string
	DefaultButton string
	CancelButton  string
	Icon          Icon

	// Input adds a text field prefilled with Answer.
	Input        bool
	Answer       string
	HiddenAnswer bool

	// GiveUpAfter dismisses the dialog after a delay.
	GiveUpAfter time.Duration
}

// Response is the user's answer to a dialog or alert.
type Response struct {
	Button string `json:"button" yaml:"button"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	GaveUp bool   `json:"gave_up,omitempty" yaml:"gave_up,omitempty"`
}

func (d Dialog) options() map[string]any {
	o := map[string]any{}
	if d.Title != "" {
		o["withTitle"] = d.Title
	}
	if len(d.Buttons) > 0 {
		o["buttons"] = d.Buttons
	}
	if d.DefaultButton != "" {
		o["defaultButton"] = d.DefaultButton
	}
	if d.CancelButton != "" {
		o["cancelButton"] = d.CancelButton
	}
	if d.Icon != IconNone {
		o["withIcon"] = string(d.Icon)
	}
	if d.Input {
		o["defaultAnswer"] = d.Answer
		if d.HiddenAnswer {
			o["hiddenAnswer"] = true
		}
	}
	if d.GiveUpAfter > 0 {
		o["givingUpAfter"] = seconds(d.GiveUpAfter)
	}
	return o
}

// Show displays d.
func Show(ctx context.Context, sess *xa.Session, d Dialog) (Response, error) {
	v, err := call(ctx, sess, "displayDialog", d.Text, d.options())
	if err != nil {
		return Response{}, err
	}
	return response(v), nil
}

// AlertKind selects the alert style.
type AlertKind string

const (
	Informational AlertKind = "informational"
	Warning       AlertKind = "warning"
	Critical      AlertKind = "critical"
)

// Alert describes a display alert call.
type Alert struct {
	Message       string
	Detail        string
	Kind          AlertKind
	Buttons       []string
	DefaultButton string
	CancelButton  string
	GiveUpAfter   time.Duration
}

// ShowAlert displays a.
func ShowAlert(ctx context.Context, sess *xa.Session, a Alert) (Response, error) {
	o := map[string]any{}
	if a.Detail != "" {
		o["message"] = a.Detail
	}
	if a.Kind != "" {
		o["as"] = string(a.Kind)
	}
	if len(a.Buttons) > 0 {
		o["buttons"] = a.Buttons
	}
	if a.DefaultButton != "" {
		o["defaultButton"] = a.DefaultButton
	}
	if a.CancelButton != "" {
		o["cancelButton"] = a.CancelButton
	}
	if a.GiveUpAfter > 0 {
		o["givingUpAfter"] = seconds(a.GiveUpAfter)
	}
	v, err := call(ctx, sess, "displayAlert", a.Message, o)
	if err != nil {
		return Response{}, err
	}
	return response(v), nil
}

// Notification is posted to Notification Center.
type Notification struct {
	Message  string
	Title    string
	Subtitle string
	// Sound is a sound name from /System/Library/Sounds, such as "Glass".
	Sound string
}

// Notify posts n.
func Notify(ctx context.Context, sess *xa.Session, n Notification) error {
	o := map[string]any{}
	if n.Title != "" {
		o["withTitle"] = n.Title
	}
	if n.Subtitle != "" {
		o["subtitle"] = n.Subtitle
	}
	if n.Sound != "" {
		o["soundName"] = n.Sound
	}
	_, err := call(ctx, sess, "displayNotification", n.Message, o)
	return err
}

// Say speaks text, with voice if not empty.
func Say(ctx context.Context, sess *xa.Session, text, voice string) error {
	o := map[string]any{}
	if voice != "" {
		o["using"] = voice
	}
	_, err := call(ctx, sess, "say", text, o)
	return err
}

// Beep plays the alert sound count times.
func Beep(ctx context.Context, sess *xa.Session, count int) error {
	if count < 1 {
		count = 1
	}
	_, err := sess.RunJXA(ctx, prologue+fmt.Sprintf("app.beep(%d);\nreturn null;", count))
	return err
}

func call(ctx context.Context, sess *xa.Session, command string, direct any, opts map[string]any) (xa.Value, error) {
	var args []string
	if direct != nil {
		d, err := xa.ValueOf(direct)
		if err != nil {
			return xa.Null, err
		}
		args = append(args, d.JS())
	}
	if len(opts) > 0 {
		o, err := xa.ValueOf(opts)
		if err != nil {
			return xa.Null, err
		}
		args = append(args, o.JS())
	}
	return sess.RunJXA(ctx, prologue+"return app."+command+"("+strings.Join(args, ", ")+");")
}

func response(v xa.Value) Response {
	return Response{
		Button: v.Field("buttonReturned").Str(),
		Text:   v.Field("textReturned").Str(),
		GaveUp: v.Field("gaveUp").Bool(),
	}
}

func seconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}

func quoteAll(items []string) string {
	q := make([]string, len(items))
	for i, s := range items {
		v, _ := xa.ValueOf(s)
		q[i] = v.JS()
	}
	return "[" + strings.Join(q, ", ") + "]"
}
