// Package notes scripts Notes: accounts, folders, notes and attachments.
package notes

import (
	"context"
	"html"
	"time"

	"github.com/tmc/xa"
)

const (
	Name     = "Notes"
	BundleID = "com.apple.Notes"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/notes"})
}

// Application is Notes.
type Application struct {
	*xa.Application
}

// Open returns Notes, launching it hidden when it is not running.
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

func (a *Application) Accounts() *xa.List[*Account] { return xa.NewList(a.Object, "accounts", newAccount) }
func (a *Application) Folders() *xa.List[*Folder]   { return xa.NewList(a.Object, "folders", newFolder) }
func (a *Application) Notes() *xa.List[*Note]       { return xa.NewList(a.Object, "notes", newNote) }
func (a *Application) Attachments() *xa.List[*Attachment] {
	return xa.NewList(a.Object, "attachments", newAttachment)
}

// DefaultAccount returns the account new folders and notes go to.
func (a *Application) DefaultAccount() *Account { return newAccount(a.Element("defaultAccount")) }

// NewNote creates a note in the default folder. The name becomes the bold
// first line of the body, which Notes uses as the title.
func (a *Application) NewNote(ctx context.Context, name, body string) (*Note, error) {
	return a.Notes().Push(ctx, "note", map[string]any{"body": noteBody(name, body)})
}

// NewFolder creates a folder in the default account.
func (a *Application) NewFolder(ctx context.Context, name string) (*Folder, error) {
	return a.Folders().Push(ctx, "folder", map[string]any{"name": name})
}

func noteBody(name, body string) string {
	return "<b>" + html.EscapeString(name) + "</b><br />" + html.EscapeString(body)
}

// Account is a Notes account such as iCloud or On My Mac.
type Account struct {
	*xa.Object
}

func newAccount(o *xa.Object) *Account { return &Account{Object: o} }

func (a *Account) ID(ctx context.Context) (string, error)     { return a.GetString(ctx, "id") }
func (a *Account) Name(ctx context.Context) (string, error)   { return a.GetString(ctx, "name") }
func (a *Account) Upgraded(ctx context.Context) (bool, error) { return a.GetBool(ctx, "upgraded") }

func (a *Account) Folders() *xa.List[*Folder] { return xa.NewList(a.Object, "folders", newFolder) }
func (a *Account) Notes() *xa.List[*Note]     { return xa.NewList(a.Object, "notes", newNote) }

// DefaultFolder returns the account's default folder.
func (a *Account) DefaultFolder() *Folder { return newFolder(a.Element("defaultFolder")) }

// NewFolder creates a folder in the account.
func (a *Account) NewFolder(ctx context.Context, name string) (*Folder, error) {
	return a.Folders().Push(ctx, "folder", map[string]any{"name": name})
}

// Show shows the account in the Notes window.
func (a *Account) Show(ctx context.Context) error { return show(ctx, a.Object) }

// Folder is a folder of notes. Folders may nest.
type Folder struct {
	*xa.Object
}

func newFolder(o *xa.Object) *Folder { return &Folder{Object: o} }

func (f *Folder) ID(ctx context.Context) (string, error)   { return f.GetString(ctx, "id") }
func (f *Folder) Name(ctx context.Context) (string, error) { return f.GetString(ctx, "name") }
func (f *Folder) Shared(ctx context.Context) (bool, error) { return f.GetBool(ctx, "shared") }

func (f *Folder) SetName(ctx context.Context, name string) error { return f.Set(ctx, "name", name) }

func (f *Folder) Folders() *xa.List[*Folder] { return xa.NewList(f.Object, "folders", newFolder) }
func (f *Folder) Notes() *xa.List[*Note]     { return xa.NewList(f.Object, "notes", newNote) }

// NewNote creates a note in the folder.
func (f *Folder) NewNote(ctx context.Context, name, body string) (*Note, error) {
	return f.Notes().Push(ctx, "note", map[string]any{"body": noteBody(name, body)})
}

// NewFolder creates a subfolder.
func (f *Folder) NewFolder(ctx context.Context, name string) (*Folder, error) {
	return f.Folders().Push(ctx, "folder", map[string]any{"name": name})
}

// Show shows the folder in the Notes window.
func (f *Folder) Show(ctx context.Context) error { return show(ctx, f.Object) }

// Note is a note.
type Note struct {
	*xa.Object
}

func newNote(o *xa.Object) *Note { return &Note{Object: o} }

func (n *Note) ID(ctx context.Context) (string, error)          { return n.GetString(ctx, "id") }
func (n *Note) Name(ctx context.Context) (string, error)        { return n.GetString(ctx, "name") }
func (n *Note) Body(ctx context.Context) (string, error)        { return n.GetString(ctx, "body") }
func (n *Note) PlainText(ctx context.Context) (string, error)   { return n.GetString(ctx, "plaintext") }
func (n *Note) Locked(ctx context.Context) (bool, error)        { return n.GetBool(ctx, "passwordProtected") }
func (n *Note) Shared(ctx context.Context) (bool, error)        { return n.GetBool(ctx, "shared") }
func (n *Note) Created(ctx context.Context) (time.Time, error)  { return n.GetTime(ctx, "creationDate") }
func (n *Note) Modified(ctx context.Context) (time.Time, error) { return n.GetTime(ctx, "modificationDate") }

func (n *Note) SetName(ctx context.Context, name string) error { return n.Set(ctx, "name", name) }

// SetBody replaces the note's HTML body.
func (n *Note) SetBody(ctx context.Context, body string) error { return n.Set(ctx, "body", body) }

func (n *Note) Attachments() *xa.List[*Attachment] {
	return xa.NewList(n.Object, "attachments", newAttachment)
}

// Container returns the folder holding the note.
func (n *Note) Container(ctx context.Context) (*Folder, error) {
	o, err := n.GetObject(ctx, "container")
	if err != nil || o == nil {
		return nil, err
	}
	return newFolder(o), nil
}

// Show shows the note in the Notes window.
func (n *Note) Show(ctx context.Context) error { return show(ctx, n.Object) }

// MoveTo moves the note into folder.
func (n *Note) MoveTo(ctx context.Context, folder *Folder) error {
	_, err := n.Invoke(ctx, "move", n.Object, map[string]any{"to": folder.Object})
	return err
}

// Attachment is a file or link embedded in a note.
type Attachment struct {
	*xa.Object
}

func newAttachment(o *xa.Object) *Attachment { return &Attachment{Object: o} }

func (a *Attachment) ID(ctx context.Context) (string, error)        { return a.GetString(ctx, "id") }
func (a *Attachment) Name(ctx context.Context) (string, error)      { return a.GetString(ctx, "name") }
func (a *Attachment) ContentID(ctx context.Context) (string, error) { return a.GetString(ctx, "contentIdentifier") }
func (a *Attachment) URL(ctx context.Context) (string, error)       { return a.GetString(ctx, "url") }
func (a *Attachment) Shared(ctx context.Context) (bool, error)      { return a.GetBool(ctx, "shared") }

// Save writes the attachment to path.
func (a *Attachment) Save(ctx context.Context, path string) error {
	_, err := a.Invoke(ctx, "save", a.Object, map[string]any{"in": xa.Path(path)})
	return err
}

func show(ctx context.Context, o *xa.Object) error {
	_, err := o.Invoke(ctx, "show", o, nil)
	return err
}
