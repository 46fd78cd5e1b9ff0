// Package textedit scripts TextEdit documents.
package textedit

import (
	"context"
	"fmt"

	"github.com/tmc/xa"
	"github.com/tmc/xa/osa"
)

const (
	Name     = "TextEdit"
	BundleID = "com.apple.TextEdit"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/textedit"})
}

// Application is TextEdit.
type Application struct {
	*xa.Application
}

// Open returns TextEdit, launching it hidden when it is not running.
func Open(ctx context.Context, sess *xa.Session) (*Application, error) {
	app, err := sess.Application(ctx, Name)
	if err != nil {
		return nil, err
	}
	return New(app), nil
}

// New wraps an application resolved elsewhere.
func New(app *xa.Application) *Application {
	return &Application{Application: app}
}

// Documents returns the open documents.
func (a *Application) Documents() *xa.List[*Document] {
	return xa.NewList(a.Object, "documents", newDocument)
}

// FrontDocument returns the frontmost document.
func (a *Application) FrontDocument() *Document {
	return a.Documents().First()
}

// NewDocument opens an untitled document containing text.
func (a *Application) NewDocument(ctx context.Context, text string) (*Document, error) {
	props := map[string]any{}
	if text != "" {
		props["text"] = text
	}
	return a.Documents().Push(ctx, "document", props)
}

// OpenFile opens the file at path and returns its document.
func (a *Application) OpenFile(ctx context.Context, path string) (*Document, error) {
	v, err := a.Invoke(ctx, "open", xa.Path(path), nil)
	if err != nil {
		return nil, err
	}
	if o := v.Object(); o != nil {
		return newDocument(o), nil
	}
	return a.FrontDocument(), nil
}

// Document is a TextEdit document.
type Document struct {
	*xa.Object
}

func newDocument(o *xa.Object) *Document { return &Document{Object: o} }

func (d *Document) Name(ctx context.Context) (string, error)   { return d.GetString(ctx, "name") }
func (d *Document) Path(ctx context.Context) (string, error)   { return d.GetString(ctx, "path") }
func (d *Document) Text(ctx context.Context) (string, error)   { return d.GetString(ctx, "text") }
func (d *Document) Modified(ctx context.Context) (bool, error) { return d.GetBool(ctx, "modified") }

// SetText replaces the document's text.
func (d *Document) SetText(ctx context.Context, text string) error { return d.Set(ctx, "text", text) }

// Append adds text at the end of the document.
func (d *Document) Append(ctx context.Context, text string) error {
	return d.edit(ctx, "append text", "d.text() + "+osa.JSString(text))
}

// Prepend adds text at the start of the document.
func (d *Document) Prepend(ctx context.Context, text string) error {
	return d.edit(ctx, "prepend text", osa.JSString(text)+" + d.text()")
}

func (d *Document) edit(ctx context.Context, op, expr string) error {
	_, err := d.Eval(ctx, op, "var d = "+d.JS()+";\nd.text = "+expr+";\nreturn null;")
	return err
}

// Paragraphs returns the document's paragraphs.
func (d *Document) Paragraphs(ctx context.Context) ([]string, error) {
	return d.Elements("paragraphs").Strings(ctx, "text")
}

// Words returns the document's words.
func (d *Document) Words(ctx context.Context) ([]string, error) {
	v, err := d.Eval(ctx, "get words", "return "+d.JS()+".text.words();")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(v.List()))
	for _, w := range v.List() {
		out = append(out, w.Str())
	}
	return out, nil
}

// Save saves the document to its file.
func (d *Document) Save(ctx context.Context) error {
	_, err := d.Invoke(ctx, "save", d.Object, nil)
	return err
}

// SaveAs saves the document to path.
func (d *Document) SaveAs(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("textedit: save %s: empty path", d.JS())
	}
	_, err := d.Invoke(ctx, "save", d.Object, map[string]any{"in": xa.Path(path)})
	return err
}

// Saving tells Close what to do with unsaved changes.
type Saving string

const (
	SaveYes Saving = "yes"
	SaveNo  Saving = "no"
	SaveAsk Saving = "ask"
)

// Close closes the document.
func (d *Document) Close(ctx context.Context, saving Saving) error {
	var params map[string]any
	if saving != "" {
		params = map[string]any{"saving": string(saving)}
	}
	_, err := d.Invoke(ctx, "close", d.Object, params)
	return err
}
