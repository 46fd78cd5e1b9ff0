package sdef

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestdata(t *testing.T) *Dictionary {
	t.Helper()
	f, err := os.Open("testdata/textedit.sdef")
	require.NoError(t, err)
	defer f.Close()
	d, err := Parse(f)
	require.NoError(t, err)
	return d
}

func TestParse(t *testing.T) {
	d := loadTestdata(t)
	assert.Equal(t, "TextEdit Terminology", d.Title)
	require.Len(t, d.Suites, 2)
	assert.Len(t, d.Commands(), 3)

	closeCmd, ok := d.Command("Close")
	require.True(t, ok)
	assert.Equal(t, "coreclos", closeCmd.Code)
	require.NotNil(t, closeCmd.DirectParameter)
	assert.Equal(t, "specifier", closeCmd.DirectParameter.Type)
	require.Len(t, closeCmd.Parameters, 2)
	assert.True(t, closeCmd.Parameters[0].IsOptional())

	open, ok := d.Command("open")
	require.True(t, ok)
	require.NotNil(t, open.Result)
	assert.Len(t, open.Result.Types, 2)
	assert.Len(t, open.DirectParameter.Types, 2)

	_, ok = d.Command("frobnicate")
	assert.False(t, ok)

	app, ok := d.Class("application")
	require.True(t, ok)
	assert.Equal(t, "The application's top-level scripting object.", app.Description)
	assert.Len(t, app.Elements, 2)
	assert.True(t, app.Properties[0].ReadOnly())
}

func TestClassExtensions(t *testing.T) {
	d := loadTestdata(t)
	doc, ok := d.Class("document")
	require.True(t, ok)
	var names []string
	for _, p := range doc.Properties {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"name", "modified", "path", "text"}, names)
	assert.Equal(t, "The document’s path.", doc.Properties[2].Description)

	props := d.AllProperties("paragraph")
	require.Len(t, props, 4)
	assert.Equal(t, "alignment", props[0].Name)
	assert.Equal(t, "color", props[1].Name)
}

func TestIdent(t *testing.T) {
	tests := map[string]string{
		"save options":            "SaveOptions",
		"ask":                     "Ask",
		"printing error handling": "PrintingErrorHandling",
		"3D view":                 "X3DView",
		"some-thing_else":         "SomeThingElse",
		"":                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Ident(in), in)
	}
}

func TestGenerate(t *testing.T) {
	d := loadTestdata(t)
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, d, GenerateOptions{Package: "textedit", App: "TextEdit", Classes: true}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "// Code generated by xa sdef gen from TextEdit. DO NOT EDIT."))
	assert.Contains(t, out, "package textedit")
	assert.Contains(t, out, "type SaveOptions aevent.OSType")
	assert.Contains(t, out, `SaveOptionsYes SaveOptions = 0x79657320 // "yes "`)
	assert.Contains(t, out, `SaveOptionsNo  SaveOptions = 0x6e6f2020 // "no  "`)
	assert.Contains(t, out, "case SaveOptionsAsk:\n\t\treturn \"ask\"")
	assert.Contains(t, out, "type PrintingErrorHandling aevent.OSType")
	assert.Contains(t, out, `"application": 0x63617070, // "capp"`)
	assert.Less(t, strings.Index(out, `"application"`), strings.Index(out, `"window"`))

	buf.Reset()
	require.NoError(t, Generate(&buf, d, GenerateOptions{}))
	assert.Contains(t, buf.String(), "package main")
	assert.NotContains(t, buf.String(), "ClassCodes")
}

func TestGenerateBadCode(t *testing.T) {
	d := &Dictionary{Suites: []Suite{{
		Enumerations: []Enumeration{{Name: "bad", Enumerators: []Enumerator{{Name: "x", Code: "toolong"}}}},
	}}}
	err := Generate(&bytes.Buffer{}, d, GenerateOptions{})
	assert.ErrorContains(t, err, `enumeration "bad"`)
}
