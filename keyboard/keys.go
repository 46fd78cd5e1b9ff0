// Package keyboard posts synthetic key events through CoreGraphics.
//
// Key combinations are written the way menus show them, joined by "+":
//
//	keyboard.Parse("cmd+shift+s")
//	keyboard.Parse("ctrl+alt+delete")
//	keyboard.Parse("f5")
//
// Posting events requires the Accessibility permission.
package keyboard

import (
	"fmt"
	"sort"
	"strings"
)

// Flags are CGEventFlags modifier masks.
type Flags uint64

const (
	Shift     Flags = 1 << 17
	Control   Flags = 1 << 18
	Alternate Flags = 1 << 19
	Command   Flags = 1 << 20
	Function  Flags = 1 << 23
)

var modifierNames = map[string]Flags{
	"cmd":     Command,
	"command": Command,
	"shift":   Shift,
	"opt":     Alternate,
	"option":  Alternate,
	"alt":     Alternate,
	"ctrl":    Control,
	"control": Control,
	"fn":      Function,
}

// String lists the modifiers in menu order, for example "ctrl+alt+shift+cmd".
func (f Flags) String() string {
	var parts []string
	for _, m := range []struct {
		flag Flags
		name string
	}{
		{Function, "fn"},
		{Control, "ctrl"},
		{Alternate, "alt"},
		{Shift, "shift"},
		{Command, "cmd"},
	} {
		if f&m.flag != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(parts, "+")
}

// Key codes from Carbon/HIToolbox/Events.h, US layout.
var keyCodes = map[string]uint16{
	"a": 0x00, "s": 0x01, "d": 0x02, "f": 0x03, "h": 0x04, "g": 0x05, "z": 0x06, "x": 0x07,
	"c": 0x08, "v": 0x09, "b": 0x0B, "q": 0x0C, "w": 0x0D, "e": 0x0E, "r": 0x0F,
	"y": 0x10, "t": 0x11, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15, "6": 0x16, "5": 0x17,
	"=": 0x18, "9": 0x19, "7": 0x1A, "-": 0x1B, "8": 0x1C, "0": 0x1D, "]": 0x1E, "o": 0x1F,
	"u": 0x20, "[": 0x21, "i": 0x22, "p": 0x23, "l": 0x25, "j": 0x26, "'": 0x27,
	"k": 0x28, ";": 0x29, "\\": 0x2A, ",": 0x2B, "/": 0x2C, "n": 0x2D, "m": 0x2E, ".": 0x2F,
	"`": 0x32,

	"space":          0x31,
	"return":         0x24,
	"enter":          0x4C,
	"tab":            0x30,
	"escape":         0x35,
	"esc":            0x35,
	"delete":         0x33,
	"backspace":      0x33,
	"forward-delete": 0x75,
	"capslock":       0x39,
	"help":           0x72,

	"left":  0x7B,
	"right": 0x7C,
	"down":  0x7D,
	"up":    0x7E,

	"home":     0x73,
	"end":      0x77,
	"pageup":   0x74,
	"pagedown": 0x79,

	"f1":  0x7A,
	"f2":  0x78,
	"f3":  0x63,
	"f4":  0x76,
	"f5":  0x60,
	"f6":  0x61,
	"f7":  0x62,
	"f8":  0x64,
	"f9":  0x65,
	"f10": 0x6D,
	"f11": 0x67,
	"f12": 0x6F,
	"f13": 0x69,
	"f14": 0x6B,
	"f15": 0x71,

	"volumeup":   0x48,
	"volumedown": 0x49,
	"mute":       0x4A,
}

// shifted maps characters typed with shift held to their unshifted key.
var shifted = map[rune]string{
	'!': "1", '@': "2", '#': "3", '$': "4", '%': "5", '^': "6", '&': "7", '*': "8",
	'(': "9", ')': "0", '_': "-", '+': "=", '{': "[", '}': "]", '|': "\\", ':': ";",
	'"': "'", '<': ",", '>': ".", '?': "/", '~': "`",
}

// KeyCode returns the virtual key code for a key name such as "a", "f5"
// or "return".
func KeyCode(name string) (uint16, bool) {
	code, ok := keyCodes[strings.ToLower(name)]
	return code, ok
}

// Keys returns the known key names, sorted.
func Keys() []string {
	names := make([]string, 0, len(keyCodes))
	for k := range keyCodes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Combo is a key together with the modifiers held while it is pressed.
type Combo struct {
	Key   string
	Code  uint16
	Flags Flags
}

// String formats c the way Parse reads it.
func (c Combo) String() string {
	if c.Flags == 0 {
		return c.Key
	}
	return c.Flags.String() + "+" + c.Key
}

// Parse reads a combination such as "cmd+shift+s". Upper-case letters and
// shifted symbols imply shift, so "cmd+S" equals "cmd+shift+s". A literal
// plus sign is written as "shift+=" or as the final "+" in "cmd++".
func Parse(s string) (Combo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Combo{}, fmt.Errorf("keyboard: empty key combination")
	}
	var parts []string
	switch {
	case s == "+":
		parts = []string{"+"}
	case strings.HasSuffix(s, "++"):
		parts = append(strings.Split(strings.TrimSuffix(s, "++"), "+"), "+")
	default:
		parts = strings.Split(s, "+")
	}

	var c Combo
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i < len(parts)-1 {
			f, ok := modifierNames[strings.ToLower(p)]
			if !ok {
				return Combo{}, fmt.Errorf("keyboard: unknown modifier %q in %q", p, s)
			}
			c.Flags |= f
			continue
		}
		key, flags, err := resolveKey(p)
		if err != nil {
			return Combo{}, fmt.Errorf("keyboard: %w in %q", err, s)
		}
		c.Key = key
		c.Code = keyCodes[key]
		c.Flags |= flags
	}
	return c, nil
}

func resolveKey(p string) (string, Flags, error) {
	if p == "" {
		return "", 0, fmt.Errorf("missing key")
	}
	if _, ok := keyCodes[p]; ok {
		return p, 0, nil
	}
	if r := []rune(p); len(r) == 1 {
		if base, ok := shifted[r[0]]; ok {
			return base, Shift, nil
		}
		if lower := strings.ToLower(p); lower != p {
			if _, ok := keyCodes[lower]; ok {
				return lower, Shift, nil
			}
		}
	}
	if lower := strings.ToLower(p); len(lower) > 1 {
		if _, ok := keyCodes[lower]; ok {
			return lower, 0, nil
		}
	}
	return "", 0, fmt.Errorf("unknown key %q", p)
}
