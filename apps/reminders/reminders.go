// Package reminders scripts Reminders: accounts, lists and reminders.
package reminders

import (
	"context"
	"time"

	"github.com/tmc/xa"
)

const (
	Name     = "Reminders"
	BundleID = "com.apple.reminders"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/reminders"})
}

// Application is Reminders.
type Application struct {
	*xa.Application
}

// Open returns Reminders, launching it hidden when it is not running.
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

func (a *Application) Accounts() *xa.List[*Account]   { return xa.NewList(a.Object, "accounts", newAccount) }
func (a *Application) Lists() *xa.List[*List]         { return xa.NewList(a.Object, "lists", newList) }
func (a *Application) Reminders() *xa.List[*Reminder] { return xa.NewList(a.Object, "reminders", newReminder) }

// DefaultAccount returns the account new lists are created in.
func (a *Application) DefaultAccount() *Account { return newAccount(a.Element("defaultAccount")) }

// DefaultList returns the list new reminders are added to.
func (a *Application) DefaultList() *List { return newList(a.Element("defaultList")) }

// NewList creates a list in the default account.
func (a *Application) NewList(ctx context.Context, name string) (*List, error) {
	return a.Lists().Push(ctx, "list", map[string]any{"name": name})
}

// NewReminder adds a reminder to the default list.
func (a *Application) NewReminder(ctx context.Context, r NewReminder) (*Reminder, error) {
	return a.DefaultList().NewReminder(ctx, r)
}

// NewReminder holds the properties of a reminder to create. Zero fields
// are left to the application's defaults.
type NewReminder struct {
	Name     string
	Body     string
	Due      time.Time
	AllDay   bool
	RemindMe time.Time
	Priority Priority
	Flagged  bool
}

func (r NewReminder) props() map[string]any {
	props := map[string]any{"name": r.Name}
	if r.Body != "" {
		props["body"] = r.Body
	}
	if !r.Due.IsZero() {
		if r.AllDay {
			props["alldayDueDate"] = r.Due
		} else {
			props["dueDate"] = r.Due
		}
	}
	if !r.RemindMe.IsZero() {
		props["remindMeDate"] = r.RemindMe
	}
	if r.Priority != PriorityNone {
		props["priority"] = int(r.Priority)
	}
	if r.Flagged {
		props["flagged"] = true
	}
	return props
}

// Priority is a reminder priority as Reminders stores it.
type Priority int

const (
	PriorityNone   Priority = 0
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 5
	PriorityLow    Priority = 9
)

func (p Priority) String() string {
	switch {
	case p == PriorityNone:
		return "none"
	case p < PriorityMedium:
		return "high"
	case p == PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// Account is a Reminders account such as iCloud.
type Account struct {
	*xa.Object
}

func newAccount(o *xa.Object) *Account { return &Account{Object: o} }

func (a *Account) ID(ctx context.Context) (string, error)   { return a.GetString(ctx, "id") }
func (a *Account) Name(ctx context.Context) (string, error) { return a.GetString(ctx, "name") }

func (a *Account) Lists() *xa.List[*List]         { return xa.NewList(a.Object, "lists", newList) }
func (a *Account) Reminders() *xa.List[*Reminder] { return xa.NewList(a.Object, "reminders", newReminder) }

// NewList creates a list in the account.
func (a *Account) NewList(ctx context.Context, name string) (*List, error) {
	return a.Lists().Push(ctx, "list", map[string]any{"name": name})
}

// List is a reminder list.
type List struct {
	*xa.Object
}

func newList(o *xa.Object) *List { return &List{Object: o} }

func (l *List) ID(ctx context.Context) (string, error)     { return l.GetString(ctx, "id") }
func (l *List) Name(ctx context.Context) (string, error)   { return l.GetString(ctx, "name") }
func (l *List) Color(ctx context.Context) (string, error)  { return l.GetString(ctx, "color") }
func (l *List) Emblem(ctx context.Context) (string, error) { return l.GetString(ctx, "emblem") }

func (l *List) SetName(ctx context.Context, name string) error   { return l.Set(ctx, "name", name) }
func (l *List) SetColor(ctx context.Context, color string) error { return l.Set(ctx, "color", color) }

func (l *List) Reminders() *xa.List[*Reminder] { return xa.NewList(l.Object, "reminders", newReminder) }

// Incomplete returns the reminders of the list that are not completed.
func (l *List) Incomplete() (*xa.List[*Reminder], error) {
	return l.Reminders().Match(map[string]any{"completed": false})
}

// NewReminder adds a reminder to the list.
func (l *List) NewReminder(ctx context.Context, r NewReminder) (*Reminder, error) {
	return l.Reminders().Push(ctx, "reminder", r.props())
}

// Show shows the list in the Reminders window.
func (l *List) Show(ctx context.Context) error {
	_, err := l.Invoke(ctx, "show", l.Object, nil)
	return err
}

// Reminder is a single reminder.
type Reminder struct {
	*xa.Object
}

func newReminder(o *xa.Object) *Reminder { return &Reminder{Object: o} }

func (r *Reminder) ID(ctx context.Context) (string, error)             { return r.GetString(ctx, "id") }
func (r *Reminder) Name(ctx context.Context) (string, error)           { return r.GetString(ctx, "name") }
func (r *Reminder) Body(ctx context.Context) (string, error)           { return r.GetString(ctx, "body") }
func (r *Reminder) Completed(ctx context.Context) (bool, error)        { return r.GetBool(ctx, "completed") }
func (r *Reminder) Flagged(ctx context.Context) (bool, error)          { return r.GetBool(ctx, "flagged") }
func (r *Reminder) Due(ctx context.Context) (time.Time, error)         { return r.GetTime(ctx, "dueDate") }
func (r *Reminder) AllDayDue(ctx context.Context) (time.Time, error)   { return r.GetTime(ctx, "alldayDueDate") }
func (r *Reminder) RemindMe(ctx context.Context) (time.Time, error)    { return r.GetTime(ctx, "remindMeDate") }
func (r *Reminder) CompletedAt(ctx context.Context) (time.Time, error) { return r.GetTime(ctx, "completionDate") }
func (r *Reminder) Created(ctx context.Context) (time.Time, error)     { return r.GetTime(ctx, "creationDate") }
func (r *Reminder) Modified(ctx context.Context) (time.Time, error)    { return r.GetTime(ctx, "modificationDate") }

func (r *Reminder) SetName(ctx context.Context, name string) error     { return r.Set(ctx, "name", name) }
func (r *Reminder) SetBody(ctx context.Context, body string) error     { return r.Set(ctx, "body", body) }
func (r *Reminder) SetCompleted(ctx context.Context, done bool) error  { return r.Set(ctx, "completed", done) }
func (r *Reminder) SetFlagged(ctx context.Context, flagged bool) error { return r.Set(ctx, "flagged", flagged) }
func (r *Reminder) SetDue(ctx context.Context, due time.Time) error    { return r.Set(ctx, "dueDate", due) }

// Priority returns the reminder's priority.
func (r *Reminder) Priority(ctx context.Context) (Priority, error) {
	n, err := r.GetInt(ctx, "priority")
	return Priority(n), err
}

// SetPriority changes the reminder's priority.
func (r *Reminder) SetPriority(ctx context.Context, p Priority) error {
	return r.Set(ctx, "priority", int(p))
}

// Container returns the list holding the reminder.
func (r *Reminder) Container(ctx context.Context) (*List, error) {
	o, err := r.GetObject(ctx, "container")
	if err != nil || o == nil {
		return nil, err
	}
	return newList(o), nil
}

// Show shows the reminder in the Reminders window.
func (r *Reminder) Show(ctx context.Context) error {
	_, err := r.Invoke(ctx, "show", r.Object, nil)
	return err
}

// MoveTo moves the reminder to another list.
func (r *Reminder) MoveTo(ctx context.Context, list *List) error {
	_, err := r.Invoke(ctx, "move", r.Object, map[string]any{"to": list.Object})
	return err
}
