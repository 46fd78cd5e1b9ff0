// Package messages scripts Messages: chats, participants, accounts and file
// transfers.
package messages

import (
	"context"
	"errors"
	"time"

	"github.com/tmc/xa"
)

const (
	Name     = "Messages"
	BundleID = "com.apple.MobileSMS"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/messages", Aliases: []string{"iMessage"}})
}

// ErrEmptyMessage is returned when sending an empty message.
var ErrEmptyMessage = errors.New("messages: empty message")

// Application is Messages.
type Application struct {
	*xa.Application
}

// Open returns Messages, launching it hidden when it is not running.
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

func (a *Application) Chats() *xa.List[*Chat]               { return xa.NewList(a.Object, "chats", newChat) }
func (a *Application) Participants() *xa.List[*Participant] { return xa.NewList(a.Object, "participants", newParticipant) }
func (a *Application) Accounts() *xa.List[*Account]         { return xa.NewList(a.Object, "accounts", newAccount) }
func (a *Application) FileTransfers() *xa.List[*FileTransfer] {
	return xa.NewList(a.Object, "fileTransfers", newFileTransfer)
}

// Send sends text to a chat or participant.
func (a *Application) Send(ctx context.Context, text string, to Recipient) error {
	if text == "" {
		return ErrEmptyMessage
	}
	_, err := a.Invoke(ctx, "send", text, map[string]any{"to": to.Specifier()})
	return err
}

// SendFile sends the file at path to a chat or participant.
func (a *Application) SendFile(ctx context.Context, path string, to Recipient) error {
	_, err := a.Invoke(ctx, "send", xa.Path(path), map[string]any{"to": to.Specifier()})
	return err
}

// Recipient is a chat or a participant.
type Recipient interface {
	Specifier() xa.Specifier
}

// Chat is a conversation.
type Chat struct {
	*xa.Object
}

func newChat(o *xa.Object) *Chat { return &Chat{Object: o} }

func (c *Chat) ID(ctx context.Context) (string, error)   { return c.GetString(ctx, "id") }
func (c *Chat) Name(ctx context.Context) (string, error) { return c.GetString(ctx, "name") }

func (c *Chat) Participants() *xa.List[*Participant] {
	return xa.NewList(c.Object, "participants", newParticipant)
}

// Account returns the account the chat belongs to.
func (c *Chat) Account(ctx context.Context) (*Account, error) {
	o, err := c.GetObject(ctx, "account")
	if err != nil || o == nil {
		return nil, err
	}
	return newAccount(o), nil
}

// Send sends text to the chat.
func (c *Chat) Send(ctx context.Context, text string) error {
	if text == "" {
		return ErrEmptyMessage
	}
	_, err := c.Invoke(ctx, "send", text, map[string]any{"to": c.Object})
	return err
}

// Participant is a person taking part in chats.
type Participant struct {
	*xa.Object
}

func newParticipant(o *xa.Object) *Participant { return &Participant{Object: o} }

func (p *Participant) ID(ctx context.Context) (string, error)        { return p.GetString(ctx, "id") }
func (p *Participant) Handle(ctx context.Context) (string, error)    { return p.GetString(ctx, "handle") }
func (p *Participant) Name(ctx context.Context) (string, error)      { return p.GetString(ctx, "name") }
func (p *Participant) FirstName(ctx context.Context) (string, error) { return p.GetString(ctx, "firstName") }
func (p *Participant) LastName(ctx context.Context) (string, error)  { return p.GetString(ctx, "lastName") }
func (p *Participant) FullName(ctx context.Context) (string, error)  { return p.GetString(ctx, "fullName") }

// Account is a messaging account such as iMessage or SMS.
type Account struct {
	*xa.Object
}

func newAccount(o *xa.Object) *Account { return &Account{Object: o} }

func (a *Account) ID(ctx context.Context) (string, error)               { return a.GetString(ctx, "id") }
func (a *Account) Description(ctx context.Context) (string, error)      { return a.GetString(ctx, "objectDescription") }
func (a *Account) ServiceType(ctx context.Context) (string, error)      { return a.GetString(ctx, "serviceType") }
func (a *Account) ConnectionStatus(ctx context.Context) (string, error) { return a.GetString(ctx, "connectionStatus") }
func (a *Account) Enabled(ctx context.Context) (bool, error)            { return a.GetBool(ctx, "enabled") }

func (a *Account) Chats() *xa.List[*Chat] { return xa.NewList(a.Object, "chats", newChat) }
func (a *Account) Participants() *xa.List[*Participant] {
	return xa.NewList(a.Object, "participants", newParticipant)
}

// FileTransfer is a file sent or received in a chat.
type FileTransfer struct {
	*xa.Object
}

func newFileTransfer(o *xa.Object) *FileTransfer { return &FileTransfer{Object: o} }

func (f *FileTransfer) ID(ctx context.Context) (string, error)         { return f.GetString(ctx, "id") }
func (f *FileTransfer) Name(ctx context.Context) (string, error)       { return f.GetString(ctx, "name") }
func (f *FileTransfer) Direction(ctx context.Context) (string, error)  { return f.GetString(ctx, "direction") }
func (f *FileTransfer) Status(ctx context.Context) (string, error)     { return f.GetString(ctx, "transferStatus") }
func (f *FileTransfer) Size(ctx context.Context) (int, error)          { return f.GetInt(ctx, "fileSize") }
func (f *FileTransfer) Progress(ctx context.Context) (int, error)      { return f.GetInt(ctx, "fileProgress") }
func (f *FileTransfer) Started(ctx context.Context) (time.Time, error) { return f.GetTime(ctx, "started") }

// Path returns the local path of the transferred file.
func (f *FileTransfer) Path(ctx context.Context) (string, error) {
	v, err := f.Eval(ctx, "get file path", "var p = "+f.JS()+".filePath();\nreturn p ? p.toString() : null;")
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// Participant returns the other side of the transfer.
func (f *FileTransfer) Participant(ctx context.Context) (*Participant, error) {
	o, err := f.GetObject(ctx, "participant")
	if err != nil || o == nil {
		return nil, err
	}
	return newParticipant(o), nil
}
