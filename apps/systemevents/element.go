package systemevents

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tmc/xa"
	"github.com/tmc/xa/osa"
	"github.com/tmc/xa/predicate"
)

// ErrNotFound is returned when no element matches a query.
var ErrNotFound = errors.New("systemevents: no matching UI element")

// UIElement is an accessibility element of a process.
type UIElement struct {
	*xa.Object
}

func newElement(o *xa.Object) *UIElement { return &UIElement{Object: o} }

func (e *UIElement) Name(ctx context.Context) (string, error)        { return e.GetString(ctx, "name") }
func (e *UIElement) Role(ctx context.Context) (string, error)        { return e.GetString(ctx, "role") }
func (e *UIElement) Subrole(ctx context.Context) (string, error)     { return e.GetString(ctx, "subrole") }
func (e *UIElement) Title(ctx context.Context) (string, error)       { return e.GetString(ctx, "title") }
func (e *UIElement) Description(ctx context.Context) (string, error) { return e.GetString(ctx, "description") }
func (e *UIElement) Help(ctx context.Context) (string, error)        { return e.GetString(ctx, "help") }
func (e *UIElement) Enabled(ctx context.Context) (bool, error)       { return e.GetBool(ctx, "enabled") }
func (e *UIElement) Focused(ctx context.Context) (bool, error)       { return e.GetBool(ctx, "focused") }
func (e *UIElement) Selected(ctx context.Context) (bool, error)      { return e.GetBool(ctx, "selected") }

// Value returns the element's value, e.g. a text field's contents.
func (e *UIElement) Value(ctx context.Context) (xa.Value, error) { return e.Get(ctx, "value") }

// SetValue changes the element's value.
func (e *UIElement) SetValue(ctx context.Context, v any) error { return e.Set(ctx, "value", v) }

func (e *UIElement) SetFocused(ctx context.Context, v bool) error { return e.Set(ctx, "focused", v) }

// Position returns the element's top-left corner in screen coordinates.
func (e *UIElement) Position(ctx context.Context) (x, y int, err error) {
	v, err := e.Get(ctx, "position")
	if err != nil {
		return 0, 0, err
	}
	return pair(v)
}

// Size returns the element's width and height.
func (e *UIElement) Size(ctx context.Context) (w, h int, err error) {
	v, err := e.Get(ctx, "size")
	if err != nil {
		return 0, 0, err
	}
	return pair(v)
}

func pair(v xa.Value) (int, int, error) {
	l := v.List()
	if len(l) != 2 {
		return 0, 0, fmt.Errorf("systemevents: expected a pair, got %s", v)
	}
	return int(l[0].Int()), int(l[1].Int()), nil
}

func (e *UIElement) elements(name string) *xa.List[*UIElement] {
	return xa.NewList(e.Object, name, newElement)
}

// UIElements returns the element's direct children.
func (e *UIElement) UIElements() *xa.List[*UIElement] { return e.elements("uiElements") }
func (e *UIElement) Buttons() *xa.List[*UIElement]    { return e.elements("buttons") }
func (e *UIElement) TextFields() *xa.List[*UIElement] { return e.elements("textFields") }
func (e *UIElement) CheckBoxes() *xa.List[*UIElement] { return e.elements("checkboxes") }
func (e *UIElement) Groups() *xa.List[*UIElement]     { return e.elements("groups") }

// Click clicks the element.
func (e *UIElement) Click(ctx context.Context) error {
	_, err := e.Call(ctx, "click")
	return err
}

// Perform performs a named accessibility action such as "AXPress" or
// "AXShowMenu".
func (e *UIElement) Perform(ctx context.Context, action string) error {
	_, err := e.Eval(ctx, "perform "+action, "return "+e.JS()+".actions.byName("+osa.JSString(action)+").perform();")
	return err
}

// Query selects UI elements. Empty fields match anything; a query with no
// fields matches every element.
type Query struct {
	Role        string
	Subrole     string
	Title       string
	Description string
	Name        string
}

func (q Query) fields() map[string]any {
	m := map[string]any{}
	for k, v := range map[string]string{
		"role":        q.Role,
		"subrole":     q.Subrole,
		"title":       q.Title,
		"description": q.Description,
		"name":        q.Name,
	} {
		if v != "" {
			m[k] = v
		}
	}
	return m
}

func (q Query) String() string {
	var parts []string
	for _, f := range []struct{ k, v string }{
		{"role", q.Role}, {"subrole", q.Subrole}, {"title", q.Title}, {"description", q.Description}, {"name", q.Name},
	} {
		if f.v != "" {
			parts = append(parts, f.k+"="+f.v)
		}
	}
	return strings.Join(parts, " ")
}

// Children returns the direct children matching q. The match is evaluated
// by System Events.
func (e *UIElement) Children(q Query) (*xa.List[*UIElement], error) {
	f := q.fields()
	if len(f) == 0 {
		return e.UIElements(), nil
	}
	p, err := predicate.FromMap(f)
	if err != nil {
		return nil, err
	}
	return e.UIElements().Filter(p)
}

// Find searches the whole element tree below e and returns the first
// element matching q.
func (e *UIElement) Find(ctx context.Context, q Query) (*UIElement, error) {
	all, err := e.FindAll(ctx, q, 1)
	if err != nil {
		return nil, err
	}
	return all[0], nil
}

// FindAll searches the whole element tree below e and returns up to limit
// matching elements; limit <= 0 returns every match. ErrNotFound is
// returned when nothing matches.
func (e *UIElement) FindAll(ctx context.Context, q Query, limit int) ([]*UIElement, error) {
	v, err := e.Eval(ctx, "find "+q.String(), findScript(e.JS(), q, limit))
	if err != nil {
		return nil, err
	}
	var out []*UIElement
	for _, el := range v.List() {
		if o := el.Object(); o != nil {
			out = append(out, newElement(o))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, q)
	}
	return out, nil
}

func findScript(root string, q Query, limit int) string {
	var conds []string
	for k, v := range q.fields() {
		conds = append(conds, "e."+k+"() === "+osa.JSString(v.(string)))
	}
	match := "true"
	if len(conds) > 0 {
		sort.Strings(conds)
		match = strings.Join(conds, " && ")
	}
	return fmt.Sprintf(`var out = [];
var all = %s.entireContents();
for (var i = 0; i < all.length; i++) {
	var e = all[i];
	try {
		if (%s) {
			out.push(e);
			if (%d > 0 && out.length >= %d) break;
		}
	} catch (err) {}
}
return out;`, root, match, limit, limit)
}
