// Package sdef reads AppleScript scripting definitions.
//
// An sdef describes the suites, commands, classes and enumerations an
// application understands. Load runs the system sdef tool against an
// application bundle; Parse reads the XML directly.
package sdef

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sys/execabs"
)

// Dictionary is the root of an sdef document.
type Dictionary struct {
	Title  string  `xml:"title,attr"`
	Suites []Suite `xml:"suite"`
}

// Suite groups related terms.
type Suite struct {
	Name         string        `xml:"name,attr"`
	Code         string        `xml:"code,attr"`
	Description  string        `xml:"description,attr"`
	Hidden       string        `xml:"hidden,attr"`
	Commands     []Command     `xml:"command"`
	Classes      []Class       `xml:"class"`
	Extensions   []Class       `xml:"class-extension"`
	Enumerations []Enumeration `xml:"enumeration"`
	Records      []Record      `xml:"record-type"`
	ValueTypes   []ValueType   `xml:"value-type"`
}

// Command is a scripting command.
type Command struct {
	Name            string      `xml:"name,attr"`
	Code            string      `xml:"code,attr"`
	Description     string      `xml:"description,attr"`
	DirectParameter *Parameter  `xml:"direct-parameter"`
	Parameters      []Parameter `xml:"parameter"`
	Result          *Result     `xml:"result"`
}

// Parameter is a direct or keyword command parameter.
type Parameter struct {
	Name        string `xml:"name,attr"`
	Code        string `xml:"code,attr"`
	Type        string `xml:"type,attr"`
	Description string `xml:"description,attr"`
	Optional    string `xml:"optional,attr"`
	Types       []Type `xml:"type"`
}

// IsOptional reports whether the parameter may be omitted.
func (p Parameter) IsOptional() bool { return p.Optional == "yes" }

// Result is a command's return value.
type Result struct {
	Type        string `xml:"type,attr"`
	Description string `xml:"description,attr"`
	Types       []Type `xml:"type"`
}

// Type is a nested type alternative.
type Type struct {
	Type string `xml:"type,attr"`
	List string `xml:"list,attr"`
}

// Class is a scriptable object class, or a class extension when Extends
// is set.
type Class struct {
	Name        string     `xml:"name,attr"`
	Code        string     `xml:"code,attr"`
	Plural      string     `xml:"plural,attr"`
	Inherits    string     `xml:"inherits,attr"`
	Extends     string     `xml:"extends,attr"`
	Description string     `xml:"description,attr"`
	Properties  []Property `xml:"property"`
	Elements    []Element  `xml:"element"`
	RespondsTo  []Responds `xml:"responds-to"`
}

// Property is a class or record property.
type Property struct {
	Name        string `xml:"name,attr"`
	Code        string `xml:"code,attr"`
	Type        string `xml:"type,attr"`
	Description string `xml:"description,attr"`
	Access      string `xml:"access,attr"`
	Types       []Type `xml:"type"`
}

// ReadOnly reports whether the property cannot be set.
func (p Property) ReadOnly() bool { return p.Access == "r" }

// Element names a class that can be contained.
type Element struct {
	Type   string `xml:"type,attr"`
	Access string `xml:"access,attr"`
}

// Responds names a command a class handles.
type Responds struct {
	Command string `xml:"command,attr"`
	Name    string `xml:"name,attr"`
}

// Enumeration is a named set of four-character constants.
type Enumeration struct {
	Name        string       `xml:"name,attr"`
	Code        string       `xml:"code,attr"`
	Description string       `xml:"description,attr"`
	Enumerators []Enumerator `xml:"enumerator"`
}

// Enumerator is one constant of an Enumeration.
type Enumerator struct {
	Name        string `xml:"name,attr"`
	Code        string `xml:"code,attr"`
	Description string `xml:"description,attr"`
}

// Record is a record type.
type Record struct {
	Name       string     `xml:"name,attr"`
	Code       string     `xml:"code,attr"`
	Properties []Property `xml:"property"`
}

// ValueType is an opaque value type.
type ValueType struct {
	Name string `xml:"name,attr"`
	Code string `xml:"code,attr"`
}

// Parse decodes an sdef document. XInclude elements are ignored.
func Parse(r io.Reader) (*Dictionary, error) {
	dec := xml.NewDecoder(r)
	// Descriptions may use HTML entities.
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	var d Dictionary
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("sdef: parse: %w", err)
	}
	return &d, nil
}

// Load runs sdef(1) on the application at path and parses its output.
func Load(ctx context.Context, path string) (*Dictionary, error) {
	cmd := execabs.CommandContext(ctx, "sdef", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("sdef: %s: %w: %s", path, err, msg)
		}
		return nil, fmt.Errorf("sdef: %s: %w", path, err)
	}
	return Parse(bytes.NewReader(out))
}

// Commands returns every command across suites, in document order.
func (d *Dictionary) Commands() []Command {
	var out []Command
	for _, s := range d.Suites {
		out = append(out, s.Commands...)
	}
	return out
}

// Classes returns every class across suites with the properties,
// elements and commands of class extensions merged in.
func (d *Dictionary) Classes() []Class {
	var out []Class
	index := make(map[string]int)
	for _, s := range d.Suites {
		for _, c := range s.Classes {
			if i, ok := index[c.Name]; ok {
				out[i] = merge(out[i], c)
				continue
			}
			index[c.Name] = len(out)
			out = append(out, c)
		}
	}
	for _, s := range d.Suites {
		for _, ext := range s.Extensions {
			if i, ok := index[ext.Extends]; ok {
				out[i] = merge(out[i], ext)
			}
		}
	}
	return out
}

func merge(c, ext Class) Class {
	c.Properties = append(append([]Property(nil), c.Properties...), ext.Properties...)
	c.Elements = append(append([]Element(nil), c.Elements...), ext.Elements...)
	c.RespondsTo = append(append([]Responds(nil), c.RespondsTo...), ext.RespondsTo...)
	if c.Description == "" {
		c.Description = ext.Description
	}
	return c
}

// Enumerations returns every enumeration across suites.
func (d *Dictionary) Enumerations() []Enumeration {
	var out []Enumeration
	for _, s := range d.Suites {
		out = append(out, s.Enumerations...)
	}
	return out
}

// Class finds a class by name or plural, with extensions merged.
func (d *Dictionary) Class(name string) (Class, bool) {
	for _, c := range d.Classes() {
		if strings.EqualFold(c.Name, name) || (c.Plural != "" && strings.EqualFold(c.Plural, name)) {
			return c, true
		}
	}
	return Class{}, false
}

// Command finds a command by name.
func (d *Dictionary) Command(name string) (Command, bool) {
	for _, c := range d.Commands() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Command{}, false
}

// AllProperties returns the properties of class name including those it
// inherits, nearest first. Cycles in the inheritance chain are cut.
func (d *Dictionary) AllProperties(name string) []Property {
	var out []Property
	seen := make(map[string]bool)
	for name != "" && !seen[name] {
		seen[name] = true
		c, ok := d.Class(name)
		if !ok {
			break
		}
		out = append(out, c.Properties...)
		name = c.Inherits
	}
	return out
}
