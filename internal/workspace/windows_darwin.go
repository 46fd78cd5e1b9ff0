//go:build darwin

package workspace

import (
	"context"
	"fmt"

	"github.com/ebitengine/purego/objc"
)

// CGWindowListOption values.
const (
	windowListOptionAll              = 0
	windowListOptionOnScreenOnly     = 1 << 0
	windowListExcludeDesktopElements = 1 << 4
)

// Windows lists windows from the window server, front to back.
func (w *Workspace) Windows(ctx context.Context, onscreenOnly bool) ([]WindowInfo, error) {
	if err := initObjC(); err != nil {
		return nil, err
	}
	option := uint32(windowListOptionAll)
	if onscreenOnly {
		option = windowListOptionOnScreenOnly | windowListExcludeDesktopElements
	}

	var wins []WindowInfo
	var err error
	withPool(func() {
		list := fnCGWindowListCopyWindowInfo(option, 0)
		if list == 0 {
			err = fmt.Errorf("CGWindowListCopyWindowInfo returned no list")
			return
		}
		defer fnCFRelease(uintptr(list))
		arrayEach(list, func(d objc.ID) {
			win := WindowInfo{
				ID:        dictInt(d, "kCGWindowNumber"),
				OwnerPID:  dictInt(d, "kCGWindowOwnerPID"),
				OwnerName: goString(dictGet(d, "kCGWindowOwnerName")),
				Name:      goString(dictGet(d, "kCGWindowName")),
				Layer:     dictInt(d, "kCGWindowLayer"),
				OnScreen:  dictBool(d, "kCGWindowIsOnscreen"),
				Alpha:     dictFloat(d, "kCGWindowAlpha"),
			}
			if b := dictGet(d, "kCGWindowBounds"); b != 0 {
				win.X = dictFloat(b, "X")
				win.Y = dictFloat(b, "Y")
				win.Width = dictFloat(b, "Width")
				win.Height = dictFloat(b, "Height")
			}
			wins = append(wins, win)
		})
	})
	return wins, err
}
