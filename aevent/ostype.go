// Package aevent builds and sends raw Apple Events for operations that have
// no scripting dictionary entry, such as sleeping the machine or logging
// out, and names the four-character codes Apple Events are made of.
package aevent

import (
	"fmt"
	"sort"
	"strings"
)

// OSType is a four-character code.
type OSType uint32

// FourCC converts a four-character string such as "aevt" to an OSType.
func FourCC(s string) (OSType, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("aevent: four-character code %q has %d bytes", s, len(s))
	}
	var t OSType
	for i := 0; i < 4; i++ {
		c := s[i]
		if c < 0x20 || c > 0x7e {
			return 0, fmt.Errorf("aevent: four-character code %q contains non-printable byte %#x", s, c)
		}
		t = t<<8 | OSType(c)
	}
	return t, nil
}

// MustFourCC is like FourCC but panics on error. It is meant for
// package-level constants.
func MustFourCC(s string) OSType {
	t, err := FourCC(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the four characters of t.
func (t OSType) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// Chevron returns the raw AppleScript form of t as a class, «class xxxx».
func (t OSType) Chevron() string {
	return "«class " + t.String() + "»"
}

// Lookup returns the code for a symbolic name such as "kAESleep" or
// "typeUTF8Text". The match is case-sensitive; names are those of the
// Apple Event Manager headers.
func Lookup(name string) (OSType, bool) {
	t, ok := codes[name]
	return t, ok
}

// Parse accepts either a symbolic name known to Lookup or a literal
// four-character code.
func Parse(s string) (OSType, error) {
	if t, ok := Lookup(s); ok {
		return t, nil
	}
	if len(s) == 4 {
		return FourCC(s)
	}
	return 0, fmt.Errorf("aevent: unknown code %q", s)
}

// Names returns every symbolic name with the given prefix, sorted.
func Names(prefix string) []string {
	var out []string
	for name := range codes {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
