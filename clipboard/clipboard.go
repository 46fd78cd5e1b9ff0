// Package clipboard reads and writes the general pasteboard through the
// scripting standard additions.
package clipboard

import (
	"context"

	"github.com/tmc/xa"
	"github.com/tmc/xa/osa"
)

const prologue = "var app = Application.currentApplication();\napp.includeStandardAdditions = true;\n"

// Get returns the clipboard as text. It returns "" when the clipboard
// holds no text.
func Get(ctx context.Context, sess *xa.Session) (string, error) {
	v, err := sess.RunJXA(ctx, prologue+`try {
	return app.theClipboard({as: "text"});
} catch (e) {
	if (e.errorNumber === -1700) { return ""; }
	throw e;
}`)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// Set replaces the clipboard contents with text.
func Set(ctx context.Context, sess *xa.Session, text string) error {
	_, err := sess.RunJXA(ctx, prologue+"app.setTheClipboardTo("+osa.JSString(text)+");\nreturn null;")
	return err
}

// SetFiles places file references on the clipboard, as copying in the
// Finder does.
func SetFiles(ctx context.Context, sess *xa.Session, paths ...string) error {
	files := make([]any, len(paths))
	for i, p := range paths {
		files[i] = xa.Path(p)
	}
	v, err := xa.ValueOf(files)
	if err != nil {
		return err
	}
	_, err = sess.RunJXA(ctx, prologue+"app.setTheClipboardTo("+v.JS()+");\nreturn null;")
	return err
}

// Clear empties the clipboard.
func Clear(ctx context.Context, sess *xa.Session) error {
	return Set(ctx, sess, "")
}

// Type describes one representation held by the clipboard.
type Type struct {
	Class string `json:"class" yaml:"class"`
	Size  int64  `json:"size" yaml:"size"`
}

// Info lists the representations on the clipboard and their sizes.
func Info(ctx context.Context, sess *xa.Session) ([]Type, error) {
	v, err := sess.RunJXA(ctx, prologue+`return app.clipboardInfo().map(function (e) {
	return {"class": String(e[0]), "size": e[1]};
});`)
	if err != nil {
		return nil, err
	}
	var out []Type
	for _, e := range v.List() {
		out = append(out, Type{Class: e.Field("class").Str(), Size: e.Field("size").Int()})
	}
	return out, nil
}
