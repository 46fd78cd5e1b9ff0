package xa

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/xa/osa"
)

// A Specifier is a JXA object specifier expression rooted at an
// application, such as Application("Safari").windows[0].currentTab.
// Building a specifier never talks to the application.
type Specifier struct {
	root string
	path string
}

// AppSpecifier returns the specifier of the named application. name may
// also be a bundle identifier or the path of an application bundle.
func AppSpecifier(name string) Specifier {
	return Specifier{root: "Application(" + osa.JSString(name) + ")"}
}

// ParseSpecifier parses a display string returned by a script, e.g.
// Application("Notes").accounts.byId("x").folders.byName("Notes").
func ParseSpecifier(s string) (Specifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Specifier{}, fmt.Errorf("empty specifier")
	}
	const prefix = "Application("
	if !strings.HasPrefix(s, prefix) {
		return Specifier{root: s}, nil
	}
	end := closingParen(s, len(prefix)-1)
	if end < 0 {
		return Specifier{}, fmt.Errorf("unbalanced specifier %q", s)
	}
	return Specifier{root: s[:end+1], path: s[end+1:]}, nil
}

// closingParen returns the index of the parenthesis matching the one at
// open, skipping string literals.
func closingParen(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
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
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// IsZero reports whether s is the zero Specifier.
func (s Specifier) IsZero() bool { return s.root == "" }

// Root returns the application specifier s is rooted at.
func (s Specifier) Root() Specifier { return Specifier{root: s.root} }

// AppName returns the name the root application was addressed by, or ""
// when s is not rooted at Application(...).
func (s Specifier) AppName() string {
	const prefix = "Application("
	if !strings.HasPrefix(s.root, prefix) || !strings.HasSuffix(s.root, ")") {
		return ""
	}
	var name string
	if err := json.Unmarshal([]byte(s.root[len(prefix):len(s.root)-1]), &name); err != nil {
		return ""
	}
	return name
}

// IsRoot reports whether s names an application.
func (s Specifier) IsRoot() bool { return s.path == "" }

// Property returns the specifier of a property or element collection.
func (s Specifier) Property(name string) Specifier {
	s.path += "." + name
	return s
}

// Elements is an alias of Property that reads better for collections.
func (s Specifier) Elements(name string) Specifier { return s.Property(name) }

// Index returns the i-th element of a collection; negative indices count
// from the end.
func (s Specifier) Index(i int) Specifier {
	s.path += "[" + strconv.Itoa(i) + "]"
	return s
}

// ByName returns the element of a collection with the given name.
func (s Specifier) ByName(name string) Specifier {
	s.path += ".byName(" + osa.JSString(name) + ")"
	return s
}

// ByID returns the element of a collection with the given id.
func (s Specifier) ByID(id any) Specifier {
	b, err := json.Marshal(id)
	if err != nil {
		b = []byte(osa.JSString(fmt.Sprint(id)))
	}
	s.path += ".byId(" + string(b) + ")"
	return s
}

// Whose returns the elements of a collection matching a whose clause.
func (s Specifier) Whose(clause string) Specifier {
	s.path += ".whose(" + clause + ")"
	return s
}

// String returns the JXA expression.
func (s Specifier) String() string { return s.root + s.path }

// JS returns the JXA expression.
func (s Specifier) JS() string { return s.String() }

// Call returns the expression invoking method on s with literal arguments.
func (s Specifier) Call(method string, args ...string) string {
	return s.String() + "." + method + "(" + strings.Join(args, ", ") + ")"
}
