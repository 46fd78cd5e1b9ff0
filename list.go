package xa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/xa/osa"
	"github.com/tmc/xa/predicate"
)

// List is a lazily evaluated element collection, such as a window's tabs.
// Property reads fetch a property of every element in one script; element
// accessors build wrappers without talking to the application.
type List[T any] struct {
	obj  *Object
	wrap func(*Object) T
}

// NewList returns the element collection name of parent, wrapping each
// element with wrap.
func NewList[T any](parent *Object, name string, wrap func(*Object) T) *List[T] {
	return &List[T]{
		obj:  &Object{sess: parent.sess, spec: parent.spec.Elements(camel(name)), parent: parent},
		wrap: wrap,
	}
}

// Specifier returns the collection specifier.
func (l *List[T]) Specifier() Specifier { return l.obj.spec }

// JS returns the collection specifier expression.
func (l *List[T]) JS() string { return l.obj.spec.JS() }

func (l *List[T]) String() string { return l.obj.spec.String() }

// Object returns the collection as a plain object.
func (l *List[T]) Object() *Object { return l.obj }

func (l *List[T]) element(spec Specifier) T {
	return l.wrap(&Object{sess: l.obj.sess, spec: spec, parent: l.obj.parent})
}

func (l *List[T]) derive(spec Specifier) *List[T] {
	return &List[T]{
		obj:  &Object{sess: l.obj.sess, spec: spec, parent: l.obj.parent},
		wrap: l.wrap,
	}
}

// At returns the i-th element. Negative indices count from the end.
func (l *List[T]) At(i int) T { return l.element(l.obj.spec.Index(i)) }

// First returns the first element.
func (l *List[T]) First() T { return l.At(0) }

// Last returns the last element.
func (l *List[T]) Last() T { return l.At(-1) }

// ByName returns the element with the given name.
func (l *List[T]) ByName(name string) T { return l.element(l.obj.spec.ByName(name)) }

// ByID returns the element with the given id.
func (l *List[T]) ByID(id any) T { return l.element(l.obj.spec.ByID(id)) }

// Len counts the elements.
func (l *List[T]) Len(ctx context.Context) (int, error) {
	v, err := l.obj.Eval(ctx, "count "+l.name(), "return "+l.obj.spec.JS()+".length;")
	if err != nil {
		return 0, err
	}
	return int(v.Int()), nil
}

// Items resolves every element to its stable specifier, as reported by the
// application, e.g. windows.byId(4711) rather than windows[0].
func (l *List[T]) Items(ctx context.Context) ([]T, error) {
	v, err := l.obj.Eval(ctx, "list "+l.name(), "return "+l.obj.spec.JS()+"();")
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(v.List()))
	for i, e := range v.List() {
		spec, ok := e.Specifier()
		if !ok {
			spec = l.obj.spec.Index(i)
		}
		items = append(items, l.element(spec))
	}
	return items, nil
}

// Property reads a property of every element in one round trip.
func (l *List[T]) Property(ctx context.Context, name string) ([]Value, error) {
	key := camel(name)
	if err := osa.JSIdent(key); err != nil {
		return nil, wrap("get "+name, l.obj.App(), err)
	}
	v, err := l.obj.Eval(ctx, "get "+name+" of "+l.name(), "return "+l.obj.spec.JS()+"."+key+"();")
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return nil, nil
	}
	if v.Kind() != KindList {
		return nil, wrap("get "+name+" of "+l.name(), l.obj.App(), fmt.Errorf("expected a list, got %s", v.Kind()))
	}
	return v.List(), nil
}

// Strings reads a text property of every element.
func (l *List[T]) Strings(ctx context.Context, name string) ([]string, error) {
	return mapValues(ctx, l, name, Value.Str)
}

// Ints reads an integer property of every element.
func (l *List[T]) Ints(ctx context.Context, name string) ([]int, error) {
	return mapValues(ctx, l, name, func(v Value) int { return int(v.Int()) })
}

// Floats reads a real property of every element.
func (l *List[T]) Floats(ctx context.Context, name string) ([]float64, error) {
	return mapValues(ctx, l, name, Value.Float)
}

// Bools reads a boolean property of every element.
func (l *List[T]) Bools(ctx context.Context, name string) ([]bool, error) {
	return mapValues(ctx, l, name, Value.Bool)
}

// Times reads a date property of every element.
func (l *List[T]) Times(ctx context.Context, name string) ([]time.Time, error) {
	return mapValues(ctx, l, name, Value.Time)
}

func mapValues[T, R any](ctx context.Context, l *List[T], name string, fn func(Value) R) ([]R, error) {
	vs, err := l.Property(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]R, len(vs))
	for i, v := range vs {
		out[i] = fn(v)
	}
	return out, nil
}

// By returns the first element whose property equals value. The match is
// evaluated by the application; ErrNoSuchObject is returned when no
// element matches.
func (l *List[T]) By(ctx context.Context, property string, value any) (T, error) {
	var zero T
	op := "find " + l.name() + " by " + property
	p := predicate.New()
	if err := p.Add(camel(property), predicate.Equal, value); err != nil {
		return zero, wrap(op, l.obj.App(), err)
	}
	clause, err := p.Whose()
	if err != nil {
		return zero, wrap(op, l.obj.App(), err)
	}
	matches := l.obj.spec.Whose(clause)
	v, err := l.obj.Eval(ctx, op, "return "+matches.JS()+".length;")
	if err != nil {
		return zero, err
	}
	if v.Int() == 0 {
		return zero, wrap(op, l.obj.App(), fmt.Errorf("no element with %s = %v: %w", property, value, ErrNoSuchObject))
	}
	return l.element(matches.Index(0)), nil
}

// Filter narrows the collection to the elements matching p. Nothing is
// evaluated until the result is read; the application evaluates the
// condition.
func (l *List[T]) Filter(p *predicate.Predicate) (*List[T], error) {
	clause, err := p.Whose()
	if err != nil {
		return nil, err
	}
	return l.derive(l.obj.spec.Whose(clause)), nil
}

// Where narrows the collection by a single comparison, e.g.
// l.Where("name", "begins with", "Re").
func (l *List[T]) Where(property, op string, values ...any) (*List[T], error) {
	p, err := predicate.Where(camel(property), op, values...)
	if err != nil {
		return nil, err
	}
	return l.Filter(p)
}

// Match narrows the collection with a filter map; see predicate.FromMap.
func (l *List[T]) Match(filter map[string]any) (*List[T], error) {
	m := make(map[string]any, len(filter))
	for k, v := range filter {
		m[camel(k)] = v
	}
	p, err := predicate.FromMap(m)
	if err != nil {
		return nil, err
	}
	return l.Filter(p)
}

// Call invokes a command on every element in one script.
func (l *List[T]) Call(ctx context.Context, command string, args ...any) error {
	key := camel(command)
	if err := osa.JSIdent(key); err != nil {
		return wrap(command, l.obj.App(), err)
	}
	lits, err := literals(args)
	if err != nil {
		return wrap(command, l.obj.App(), err)
	}
	body := l.obj.spec.JS() + "().forEach(function (e) { e." + key + "(" + strings.Join(lits, ", ") + "); });\nreturn null;"
	_, err = l.obj.Eval(ctx, command+" "+l.name(), body)
	return err
}

// Set assigns a property on every element in one script.
func (l *List[T]) Set(ctx context.Context, name string, value any) error {
	key := camel(name)
	if err := osa.JSIdent(key); err != nil {
		return wrap("set "+name, l.obj.App(), err)
	}
	lit, err := literal(value)
	if err != nil {
		return wrap("set "+name, l.obj.App(), err)
	}
	body := l.obj.spec.JS() + "().forEach(function (e) { e." + key + " = " + lit + "; });\nreturn null;"
	_, err = l.obj.Eval(ctx, "set "+name+" of "+l.name(), body)
	return err
}

// Push makes a new element of class with the given properties and returns
// it. Applications that refuse to make the class yield an
// *UnconstructableClassError.
func (l *List[T]) Push(ctx context.Context, class string, props map[string]any) (T, error) {
	var zero T
	ctor := className(class)
	if err := osa.JSIdent(ctor); err != nil {
		return zero, &UnconstructableClassError{Class: class, Err: err}
	}
	rec := make(map[string]any, len(props))
	for k, v := range props {
		rec[camel(k)] = v
	}
	lit, err := literal(rec)
	if err != nil {
		return zero, &UnconstructableClassError{Class: class, Err: err}
	}
	body := "var o = " + l.obj.spec.Root().JS() + "." + ctor + "(" + lit + ");\n" +
		l.obj.spec.JS() + ".push(o);\nreturn o;"
	v, err := l.obj.Eval(ctx, "make "+class, body)
	if err != nil {
		return zero, &UnconstructableClassError{Class: class, Err: err}
	}
	spec, ok := v.Specifier()
	if !ok {
		spec = l.obj.spec.Index(-1)
	}
	return l.element(spec), nil
}

// name is the collection's last property name, for error messages.
func (l *List[T]) name() string {
	s := l.obj.spec.path
	name := ""
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == '.' && depth == 0:
			j := i + 1
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}
			if j >= len(s) || s[j] != '(' {
				name = s[i+1 : j]
			}
		}
	}
	return name
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
