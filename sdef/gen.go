package sdef

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"github.com/tmc/xa/aevent"
)

// GenerateOptions controls Generate.
type GenerateOptions struct {
	// Package is the package clause of the output. Defaults to "main".
	Package string
	// App is mentioned in the header comment.
	App string
	// Classes also emits a class-code table.
	Classes bool
}

type genEnum struct {
	Type        string
	Description string
	Values      []genValue
}

type genValue struct {
	Ident string
	Name  string
	Code  uint32
	Raw   string
}

type genData struct {
	Package string
	App     string
	Enums   []genEnum
	Classes []genValue
}

var genTemplate = template.Must(template.New("sdef").Parse(`// Code generated by xa sdef gen{{if .App}} from {{.App}}{{end}}. DO NOT EDIT.

package {{.Package}}

import "github.com/tmc/xa/aevent"
{{range .Enums}}
{{if .Description}}// {{.Type}}: {{.Description}}
{{else}}// {{.Type}} is an enumeration of four-character codes.
{{end}}type {{.Type}} aevent.OSType

const (
{{- $t := .Type}}
{{- range .Values}}
	{{.Ident}} {{$t}} = {{printf "0x%08x" .Code}} // {{printf "%q" .Raw}}
{{- end}}
)

// String returns the scripting name of v.
func (v {{.Type}}) String() string {
	switch v {
{{- range .Values}}
	case {{.Ident}}:
		return {{printf "%q" .Name}}
{{- end}}
	}
	return aevent.OSType(v).String()
}
{{end}}
{{- if .Classes}}
// ClassCodes maps class names to their four-character codes.
var ClassCodes = map[string]aevent.OSType{
{{- range .Classes}}
	{{printf "%q" .Name}}: {{printf "0x%08x" .Code}}, // {{printf "%q" .Raw}}
{{- end}}
}
{{end}}`))

// Generate writes Go source declaring a named OSType type and constants
// for each enumeration in d. The output is gofmt-formatted.
func Generate(w io.Writer, d *Dictionary, opts GenerateOptions) error {
	data := genData{Package: opts.Package, App: opts.App}
	if data.Package == "" {
		data.Package = "main"
	}

	types := make(map[string]bool)
	for _, e := range d.Enumerations() {
		typ := Ident(e.Name)
		if typ == "" || types[typ] {
			continue
		}
		types[typ] = true
		ge := genEnum{Type: typ, Description: oneLine(e.Description)}
		idents := make(map[string]bool)
		for _, v := range e.Enumerators {
			code, err := aevent.FourCC(v.Code)
			if err != nil {
				return fmt.Errorf("sdef: enumeration %q: %w", e.Name, err)
			}
			ident := typ + Ident(v.Name)
			if idents[ident] {
				continue
			}
			idents[ident] = true
			ge.Values = append(ge.Values, genValue{Ident: ident, Name: v.Name, Code: uint32(code), Raw: v.Code})
		}
		if len(ge.Values) > 0 {
			data.Enums = append(data.Enums, ge)
		}
	}

	if opts.Classes {
		seen := make(map[string]bool)
		for _, c := range d.Classes() {
			if seen[c.Name] || c.Code == "" {
				continue
			}
			code, err := aevent.FourCC(c.Code)
			if err != nil {
				return fmt.Errorf("sdef: class %q: %w", c.Name, err)
			}
			seen[c.Name] = true
			data.Classes = append(data.Classes, genValue{Name: c.Name, Code: uint32(code), Raw: c.Code})
		}
		sort.Slice(data.Classes, func(i, j int) bool { return data.Classes[i].Name < data.Classes[j].Name })
	}

	var buf bytes.Buffer
	if err := genTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("sdef: generate: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("sdef: format generated code: %w", err)
	}
	_, err = w.Write(src)
	return err
}

// Ident converts a scripting term such as "save options" or "ask" to an
// exported Go identifier.
func Ident(term string) string {
	var b strings.Builder
	upper := true
	for _, r := range term {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if b.Len() == 0 && unicode.IsDigit(r) {
				b.WriteByte('X')
			}
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			b.WriteRune(r)
		default:
			upper = true
		}
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
