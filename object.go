package xa

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tmc/xa/osa"
)

// Object wraps a scriptable object inside an application. Creating an
// Object never talks to the application; every accessor is a live round
// trip and nothing is cached.
type Object struct {
	sess   *Session
	spec   Specifier
	parent *Object
}

// NewObject returns a wrapper for spec with an optional parent.
func NewObject(sess *Session, spec Specifier, parent *Object) *Object {
	return &Object{sess: sess, spec: spec, parent: parent}
}

// Session returns the session the object was created in.
func (o *Object) Session() *Session { return o.sess }

// Specifier returns the object specifier.
func (o *Object) Specifier() Specifier { return o.spec }

// JS returns the object specifier expression.
func (o *Object) JS() string { return o.spec.JS() }

func (o *Object) String() string { return o.spec.String() }

// Parent returns the wrapper the object was reached from, or nil.
func (o *Object) Parent() *Object { return o.parent }

// App returns the name the owning application is addressed by.
func (o *Object) App() string { return o.spec.AppName() }

// Element returns the object held by a property, such as a window's
// current tab. The element is not resolved.
func (o *Object) Element(name string) *Object {
	return &Object{sess: o.sess, spec: o.spec.Property(camel(name)), parent: o}
}

// Elements returns an element collection of the object.
func (o *Object) Elements(name string) *List[*Object] {
	return NewList(o, name, identity)
}

func identity(o *Object) *Object { return o }

// Eval runs a JXA body and decodes its result, reporting failures as op.
// Bodies normally start from o.JS().
func (o *Object) Eval(ctx context.Context, op, body string) (Value, error) {
	return o.sess.eval(ctx, op, o.App(), body)
}

// Get reads a property. snake_case names are camel-cased.
func (o *Object) Get(ctx context.Context, name string) (Value, error) {
	key := camel(name)
	if err := osa.JSIdent(key); err != nil {
		return Null, wrap("get "+name, o.App(), err)
	}
	return o.Eval(ctx, "get "+name, "return "+o.spec.JS()+"."+key+"();")
}

// GetString reads a text property.
func (o *Object) GetString(ctx context.Context, name string) (string, error) {
	v, err := o.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// GetInt reads an integer property.
func (o *Object) GetInt(ctx context.Context, name string) (int, error) {
	v, err := o.Get(ctx, name)
	if err != nil {
		return 0, err
	}
	return int(v.Int()), nil
}

// GetFloat reads a real property.
func (o *Object) GetFloat(ctx context.Context, name string) (float64, error) {
	v, err := o.Get(ctx, name)
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

// GetBool reads a boolean property.
func (o *Object) GetBool(ctx context.Context, name string) (bool, error) {
	v, err := o.Get(ctx, name)
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

// GetTime reads a date property. A missing date is the zero time.
func (o *Object) GetTime(ctx context.Context, name string) (time.Time, error) {
	v, err := o.Get(ctx, name)
	if err != nil {
		return time.Time{}, err
	}
	return v.Time(), nil
}

// GetObject reads a property holding an object reference and returns the
// resolved object, or nil when the property is missing value.
func (o *Object) GetObject(ctx context.Context, name string) (*Object, error) {
	v, err := o.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	obj := v.Object()
	if obj != nil {
		obj.parent = o
	}
	return obj, nil
}

// Set assigns a property. snake_case names are camel-cased.
func (o *Object) Set(ctx context.Context, name string, value any) error {
	key := camel(name)
	if err := osa.JSIdent(key); err != nil {
		return wrap("set "+name, o.App(), err)
	}
	lit, err := literal(value)
	if err != nil {
		return wrap("set "+name, o.App(), err)
	}
	_, err = o.Eval(ctx, "set "+name, o.spec.JS()+"."+key+" = "+lit+";\nreturn null;")
	return err
}

// Properties reads the object's properties record.
func (o *Object) Properties(ctx context.Context) (map[string]Value, error) {
	v, err := o.Eval(ctx, "get properties", "return "+o.spec.JS()+".properties();")
	if err != nil {
		return nil, err
	}
	return v.Record(), nil
}

// SetProperties assigns several properties in one script, in key order.
func (o *Object) SetProperties(ctx context.Context, props map[string]any) error {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("var o = " + o.spec.JS() + ";\n")
	for _, k := range keys {
		key := camel(k)
		if err := osa.JSIdent(key); err != nil {
			return wrap("set properties", o.App(), err)
		}
		lit, err := literal(props[k])
		if err != nil {
			return wrap("set properties", o.App(), err)
		}
		b.WriteString("o." + key + " = " + lit + ";\n")
	}
	b.WriteString("return null;")
	_, err := o.Eval(ctx, "set properties", b.String())
	return err
}

// Call invokes a command on the object, e.g. o.Call(ctx, "close").
func (o *Object) Call(ctx context.Context, command string, args ...any) (Value, error) {
	key := camel(command)
	if err := osa.JSIdent(key); err != nil {
		return Null, wrap(command, o.App(), err)
	}
	lits, err := literals(args)
	if err != nil {
		return Null, wrap(command, o.App(), err)
	}
	return o.Eval(ctx, command, "return "+o.spec.Call(key, lits...)+";")
}

// Invoke sends an application command with an optional direct parameter
// and named parameters, e.g. app.doJavaScript(code, {in: tab}).
func (o *Object) Invoke(ctx context.Context, command string, direct any, params map[string]any) (Value, error) {
	key := camel(command)
	if err := osa.JSIdent(key); err != nil {
		return Null, wrap(command, o.App(), err)
	}
	var args []string
	if direct != nil {
		lit, err := literal(direct)
		if err != nil {
			return Null, wrap(command, o.App(), err)
		}
		args = append(args, lit)
	}
	if len(params) > 0 {
		rec := make(map[string]any, len(params))
		for k, v := range params {
			rec[camel(k)] = v
		}
		lit, err := literal(rec)
		if err != nil {
			return Null, wrap(command, o.App(), err)
		}
		args = append(args, lit)
	}
	return o.Eval(ctx, command, "return "+o.spec.Root().Call(key, args...)+";")
}

// Exists reports whether the object exists.
func (o *Object) Exists(ctx context.Context) (bool, error) {
	v, err := o.Eval(ctx, "exists", "return "+o.spec.Call("exists")+";")
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

// Delete deletes the object.
func (o *Object) Delete(ctx context.Context) error {
	_, err := o.Call(ctx, "delete")
	return err
}

// PrintOptions are the print settings understood by most applications.
type PrintOptions struct {
	// ShowDialog shows the print dialog instead of printing directly.
	ShowDialog bool
	// Copies, when positive, sets the number of copies.
	Copies int
	// Properties are additional print settings, e.g. "collating".
	Properties map[string]any
}

// Print prints the object. Applications disagree on the parameters print
// accepts, so Print retries with fewer parameters when the application
// rejects them; any other failure ends the attempts. The returned error
// joins every attempt.
func (o *Object) Print(ctx context.Context, opts PrintOptions) error {
	props := map[string]any{}
	for k, v := range opts.Properties {
		props[camel(k)] = v
	}
	if opts.Copies > 0 {
		props["copies"] = opts.Copies
	}
	attempts := []map[string]any{
		{"withProperties": props, "printDialog": opts.ShowDialog},
		{"printDialog": opts.ShowDialog},
		nil,
	}
	if len(props) == 0 {
		attempts = attempts[1:]
	}
	var errs []error
	for _, params := range attempts {
		_, err := o.Invoke(ctx, "print", o, params)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
		if !unsupported(err) {
			break
		}
	}
	return errors.Join(errs...)
}

// PrintAsync prints in the background, since print dialogs block the
// script until dismissed. The channel receives exactly one value.
func (o *Object) PrintAsync(ctx context.Context, opts PrintOptions) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- o.Print(ctx, opts)
	}()
	return done
}

// unsupported reports whether err means the application does not support a
// property or command form, as opposed to a real failure.
func unsupported(err error) bool {
	if errors.Is(err, ErrNotUnderstood) || errors.Is(err, ErrNotSettable) {
		return true
	}
	var se *osa.ScriptError
	if errors.As(err, &se) {
		switch se.Code {
		case osa.CodeCantConvert, osa.CodeHandlerFailure, codeParamMissing:
			return true
		}
	}
	return false
}

const codeParamMissing = -1701

// camel converts a snake_case name to camelCase. Names without
// underscores are returned unchanged.
func camel(name string) string {
	if !strings.Contains(name, "_") {
		return name
	}
	parts := strings.Split(name, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}

// className returns the JXA constructor name of a scripting class, e.g.
// "reminder" -> "Reminder", "folder_item" -> "FolderItem".
func className(class string) string {
	c := camel(class)
	if c == "" {
		return c
	}
	return strings.ToUpper(c[:1]) + c[1:]
}

func literals(args []any) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		lit, err := literal(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = lit
	}
	return out, nil
}
