package osa

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// JSString returns s as a JavaScript string literal. HTML characters are
// kept as is; U+2028 and U+2029 are escaped.
func JSString(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

var identRE = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// JSIdent reports an error unless name can be used as a JavaScript
// property name without quoting.
func JSIdent(name string) error {
	if !identRE.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// AppleScriptString returns s as a double-quoted AppleScript string literal.
func AppleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return `"` + s + `"`
}
