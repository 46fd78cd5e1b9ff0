package xa

import (
	"context"
	"errors"
)

// Rect is a window frame in screen coordinates.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Window is an application window.
type Window struct {
	*Object
}

func newWindow(o *Object) *Window { return &Window{Object: o} }

// AsWindow wraps an object as a window.
func AsWindow(o *Object) *Window { return newWindow(o) }

func (w *Window) Name(ctx context.Context) (string, error)    { return w.GetString(ctx, "name") }
func (w *Window) ID(ctx context.Context) (int, error)         { return w.GetInt(ctx, "id") }
func (w *Window) Index(ctx context.Context) (int, error)      { return w.GetInt(ctx, "index") }
func (w *Window) Visible(ctx context.Context) (bool, error)   { return w.GetBool(ctx, "visible") }
func (w *Window) Zoomed(ctx context.Context) (bool, error)    { return w.GetBool(ctx, "zoomed") }
func (w *Window) Closeable(ctx context.Context) (bool, error) { return w.GetBool(ctx, "closeable") }

func (w *Window) SetName(ctx context.Context, name string) error { return w.Set(ctx, "name", name) }
func (w *Window) SetIndex(ctx context.Context, i int) error      { return w.Set(ctx, "index", i) }
func (w *Window) SetVisible(ctx context.Context, v bool) error   { return w.Set(ctx, "visible", v) }
func (w *Window) SetZoomed(ctx context.Context, v bool) error    { return w.Set(ctx, "zoomed", v) }

// Bounds returns the window frame.
func (w *Window) Bounds(ctx context.Context) (Rect, error) {
	v, err := w.Get(ctx, "bounds")
	if err != nil {
		return Rect{}, err
	}
	return Rect{
		X:      v.Field("x").Float(),
		Y:      v.Field("y").Float(),
		Width:  v.Field("width").Float(),
		Height: v.Field("height").Float(),
	}, nil
}

// SetBounds moves and resizes the window.
func (w *Window) SetBounds(ctx context.Context, r Rect) error {
	return w.Set(ctx, "bounds", map[string]any{
		"x":      r.X,
		"y":      r.Y,
		"width":  r.Width,
		"height": r.Height,
	})
}

// Applications name the minimized state differently.
var collapseProperties = []string{"miniaturized", "minimized", "collapsed"}

// Collapse minimizes the window into the Dock.
func (w *Window) Collapse(ctx context.Context) error {
	return w.setCollapsed(ctx, true)
}

// Uncollapse restores a minimized window.
func (w *Window) Uncollapse(ctx context.Context) error {
	return w.setCollapsed(ctx, false)
}

// Collapsed reports whether the window is minimized.
func (w *Window) Collapsed(ctx context.Context) (bool, error) {
	var errs []error
	for _, p := range collapseProperties {
		v, err := w.GetBool(ctx, p)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
		if !unsupported(err) {
			break
		}
	}
	return false, errors.Join(errs...)
}

// setCollapsed tries each collapse property in turn. Only "not supported"
// failures move on to the next property.
func (w *Window) setCollapsed(ctx context.Context, v bool) error {
	var errs []error
	for _, p := range collapseProperties {
		err := w.Set(ctx, p, v)
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

// Close closes the window.
func (w *Window) Close(ctx context.Context) error {
	_, err := w.Call(ctx, "close")
	return err
}
