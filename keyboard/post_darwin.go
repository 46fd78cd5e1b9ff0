//go:build darwin

package keyboard

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

// kCGHIDEventTap
const hidEventTap = 0

var (
	loadOnce sync.Once
	loadErr  error

	cgEventCreateKeyboardEvent      func(source uintptr, code uint16, down bool) uintptr
	cgEventSetFlags                 func(event uintptr, flags uint64)
	cgEventPost                     func(tap uint32, event uintptr)
	cgEventPostToPid                func(pid int32, event uintptr)
	cgEventKeyboardSetUnicodeString func(event uintptr, length uint64, chars *uint16)
	cfRelease                       func(ref uintptr)
)

func load() error {
	loadOnce.Do(func() {
		cg, err := purego.Dlopen("/System/Library/Frameworks/CoreGraphics.framework/CoreGraphics", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = fmt.Errorf("keyboard: load CoreGraphics: %w", err)
			return
		}
		cf, err := purego.Dlopen("/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = fmt.Errorf("keyboard: load CoreFoundation: %w", err)
			return
		}
		purego.RegisterLibFunc(&cgEventCreateKeyboardEvent, cg, "CGEventCreateKeyboardEvent")
		purego.RegisterLibFunc(&cgEventSetFlags, cg, "CGEventSetFlags")
		purego.RegisterLibFunc(&cgEventPost, cg, "CGEventPost")
		purego.RegisterLibFunc(&cgEventPostToPid, cg, "CGEventPostToPid")
		purego.RegisterLibFunc(&cgEventKeyboardSetUnicodeString, cg, "CGEventKeyboardSetUnicodeString")
		purego.RegisterLibFunc(&cfRelease, cf, "CFRelease")
	})
	return loadErr
}

type cgPoster struct{}

func newPoster() poster { return cgPoster{} }

func (cgPoster) key(code uint16, flags Flags, down bool, pid int) error {
	if err := load(); err != nil {
		return err
	}
	ev := cgEventCreateKeyboardEvent(0, code, down)
	if ev == 0 {
		return fmt.Errorf("keyboard: create event for key code %#x failed", code)
	}
	defer cfRelease(ev)
	cgEventSetFlags(ev, uint64(flags))
	send(ev, pid)
	return nil
}

func (cgPoster) text(chars []uint16, down bool, pid int) error {
	if err := load(); err != nil {
		return err
	}
	if len(chars) == 0 {
		return nil
	}
	ev := cgEventCreateKeyboardEvent(0, 0, down)
	if ev == 0 {
		return fmt.Errorf("keyboard: create unicode event failed")
	}
	defer cfRelease(ev)
	cgEventKeyboardSetUnicodeString(ev, uint64(len(chars)), &chars[0])
	send(ev, pid)
	return nil
}

func send(ev uintptr, pid int) {
	if pid > 0 {
		cgEventPostToPid(int32(pid), ev)
		return
	}
	cgEventPost(hidEventTap, ev)
}
