package dialog

import (
	"context"

	"github.com/tmc/xa"
)

// List describes a choose from list call.
type List struct {
	Items    []string
	Title    string
	Prompt   string
	Default  []string
	OK       string
	Cancel   string
	Multiple bool
	// Empty allows confirming with nothing selected.
	Empty bool
}

// ChooseFromList shows l and returns the selected items. Canceling
// returns xa.ErrCanceled.
func ChooseFromList(ctx context.Context, sess *xa.Session, l List) ([]string, error) {
	o := map[string]any{}
	if l.Title != "" {
		o["withTitle"] = l.Title
	}
	if l.Prompt != "" {
		o["withPrompt"] = l.Prompt
	}
	if len(l.Default) > 0 {
		o["defaultItems"] = l.Default
	}
	if l.OK != "" {
		o["okButtonName"] = l.OK
	}
	if l.Cancel != "" {
		o["cancelButtonName"] = l.Cancel
	}
	if l.Multiple {
		o["multipleSelectionsAllowed"] = true
	}
	if l.Empty {
		o["emptySelectionAllowed"] = true
	}
	opts, err := xa.ValueOf(o)
	if err != nil {
		return nil, err
	}
	body := prologue + "var r = app.chooseFromList(" + quoteAll(l.Items) + ", " + opts.JS() + ");\n" +
		"return r === false ? false : r;"
	v, err := sess.RunJXA(ctx, body)
	if err != nil {
		return nil, err
	}
	if v.Kind() == xa.KindBool {
		return nil, &xa.Error{Op: "choose from list", Err: xa.ErrCanceled}
	}
	return strs(v), nil
}

// Files describes a file or folder picker.
type Files struct {
	Prompt string
	// Types restricts choose file to uniform type identifiers such as
	// "public.png".
	Types      []string
	Location   string
	Invisibles bool
	Multiple   bool
}

func (f Files) options() map[string]any {
	o := map[string]any{}
	if f.Prompt != "" {
		o["withPrompt"] = f.Prompt
	}
	if len(f.Types) > 0 {
		o["ofType"] = f.Types
	}
	if f.Location != "" {
		o["defaultLocation"] = xa.Path(f.Location)
	}
	if f.Invisibles {
		o["invisibles"] = true
	}
	if f.Multiple {
		o["multipleSelectionsAllowed"] = true
	}
	return o
}

// ChooseFile asks for one or more files and returns their POSIX paths.
func ChooseFile(ctx context.Context, sess *xa.Session, f Files) ([]string, error) {
	return choosePaths(ctx, sess, "chooseFile", f.options())
}

// ChooseFolder asks for one or more folders and returns their POSIX paths.
func ChooseFolder(ctx context.Context, sess *xa.Session, f Files) ([]string, error) {
	o := f.options()
	delete(o, "ofType")
	return choosePaths(ctx, sess, "chooseFolder", o)
}

// ChooseFileName asks for the name and location of a new file.
func ChooseFileName(ctx context.Context, sess *xa.Session, prompt, defaultName string) (string, error) {
	o := map[string]any{}
	if prompt != "" {
		o["withPrompt"] = prompt
	}
	if defaultName != "" {
		o["defaultName"] = defaultName
	}
	paths, err := choosePaths(ctx, sess, "chooseFileName", o)
	if err != nil || len(paths) == 0 {
		return "", err
	}
	return paths[0], nil
}

func choosePaths(ctx context.Context, sess *xa.Session, command string, o map[string]any) ([]string, error) {
	opts, err := xa.ValueOf(o)
	if err != nil {
		return nil, err
	}
	body := prologue + "var r = app." + command + "(" + opts.JS() + ");\n" +
		"return [].concat(r).map(function (p) { return p.toString(); });"
	v, err := sess.RunJXA(ctx, body)
	if err != nil {
		return nil, err
	}
	return strs(v), nil
}

// Color is a 16-bit RGB color.
type Color struct {
	R, G, B uint16
}

// ChooseColor shows the color picker starting at def.
func ChooseColor(ctx context.Context, sess *xa.Session, def Color) (Color, error) {
	v, err := call(ctx, sess, "chooseColor", nil, map[string]any{"defaultColor": []int{int(def.R), int(def.G), int(def.B)}})
	if err != nil {
		return Color{}, err
	}
	c := v.List()
	if len(c) != 3 {
		return Color{}, &xa.Error{Op: "choose color", Err: xa.ErrNoSuchObject}
	}
	return Color{R: uint16(c[0].Int()), G: uint16(c[1].Int()), B: uint16(c[2].Int())}, nil
}

func strs(v xa.Value) []string {
	items := v.List()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Str())
	}
	return out
}
