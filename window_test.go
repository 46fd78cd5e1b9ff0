package xa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/osa"
)

func TestWindowBounds(t *testing.T) {
	ctx := context.Background()
	windows, r := testWindows(t)
	w := windows.First()

	r.Reply(map[string]any{"x": 10, "y": 20, "width": 800, "height": 600.5})
	b, err := w.Bounds(ctx)
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 10, Y: 20, Width: 800, Height: 600.5}, b)

	require.NoError(t, w.SetBounds(ctx, Rect{Width: 100, Height: 50}))
	assert.Contains(t, r.Last(), `.bounds = {"height": 50, "width": 100, "x": 0, "y": 0};`)
}

func TestWindowCollapseFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("second property", func(t *testing.T) {
		windows, r := testWindows(t)
		r.Fail(osa.CodeNotSettable, "Can't set miniaturized.")
		require.NoError(t, windows.First().Collapse(ctx))
		require.Equal(t, 2, r.Count())
		assert.Contains(t, r.Last(), `.minimized = true;`)
	})

	t.Run("real failure stops", func(t *testing.T) {
		windows, r := testWindows(t)
		r.Fail(osa.CodeNoSuchObject, "Can't get window.")
		err := windows.First().Uncollapse(ctx)
		assert.ErrorIs(t, err, ErrNoSuchObject)
		assert.Equal(t, 1, r.Count())
	})

	t.Run("all unsupported", func(t *testing.T) {
		windows, r := testWindows(t)
		r.Fail(osa.CodeNotUnderstood, "a")
		r.Fail(osa.CodeNotUnderstood, "b")
		r.Fail(osa.CodeNotUnderstood, "c")
		err := windows.First().Collapse(ctx)
		require.Error(t, err)
		assert.Equal(t, 3, r.Count())
		for _, m := range []string{"miniaturized", "minimized", "collapsed"} {
			assert.Contains(t, err.Error(), "set "+m)
		}
	})

	t.Run("collapsed", func(t *testing.T) {
		windows, r := testWindows(t)
		r.Fail(osa.CodeNotUnderstood, "no miniaturized")
		r.Reply(true)
		got, err := windows.First().Collapsed(ctx)
		require.NoError(t, err)
		assert.True(t, got)
	})
}
