// Package calendar scripts Calendar: calendars, events and the calendar
// view.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/xa"
	"github.com/tmc/xa/predicate"
)

const (
	Name     = "Calendar"
	BundleID = "com.apple.iCal"
)

func init() {
	xa.Register(xa.Adapter{Name: Name, BundleID: BundleID, Package: "github.com/tmc/xa/apps/calendar", Aliases: []string{"iCal"}})
}

// Application is Calendar.
type Application struct {
	*xa.Application
}

// Open returns Calendar, launching it hidden when it is not running.
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

// Calendars returns every calendar.
func (a *Application) Calendars() *xa.List[*Calendar] {
	return xa.NewList(a.Object, "calendars", newCalendar)
}

// DefaultCalendar returns the first calendar, which new events go to when
// no calendar is given.
func (a *Application) DefaultCalendar() *Calendar {
	return a.Calendars().First()
}

// NewCalendar creates a calendar.
func (a *Application) NewCalendar(ctx context.Context, name string) (*Calendar, error) {
	return a.Calendars().Push(ctx, "calendar", map[string]any{"name": name})
}

// NewEvent creates an event in the default calendar.
func (a *Application) NewEvent(ctx context.Context, summary string, start, end time.Time) (*Event, error) {
	return a.DefaultCalendar().NewEvent(ctx, summary, start, end)
}

// ReloadCalendars reloads every calendar from its server.
func (a *Application) ReloadCalendars(ctx context.Context) error {
	_, err := a.Invoke(ctx, "reloadCalendars", nil, nil)
	return err
}

// View is a calendar view.
type View string

const (
	DayView   View = "day view"
	WeekView  View = "week view"
	MonthView View = "month view"
	YearView  View = "year view"
)

// SwitchView changes the calendar view.
func (a *Application) SwitchView(ctx context.Context, v View) error {
	switch v {
	case DayView, WeekView, MonthView, YearView:
	default:
		return fmt.Errorf("calendar: unknown view %q", v)
	}
	_, err := a.Invoke(ctx, "switchView", nil, map[string]any{"to": string(v)})
	return err
}

// ViewAt shows the calendar at date.
func (a *Application) ViewAt(ctx context.Context, date time.Time) error {
	_, err := a.Invoke(ctx, "viewCalendar", nil, map[string]any{"at": date})
	return err
}

// Calendar is a calendar.
type Calendar struct {
	*xa.Object
}

func newCalendar(o *xa.Object) *Calendar { return &Calendar{Object: o} }

func (c *Calendar) Name(ctx context.Context) (string, error)        { return c.GetString(ctx, "name") }
func (c *Calendar) Description(ctx context.Context) (string, error) { return c.GetString(ctx, "description") }
func (c *Calendar) Writable(ctx context.Context) (bool, error)      { return c.GetBool(ctx, "writable") }

func (c *Calendar) SetName(ctx context.Context, name string) error { return c.Set(ctx, "name", name) }

// Events returns the calendar's events.
func (c *Calendar) Events() *xa.List[*Event] {
	return xa.NewList(c.Object, "events", newEvent)
}

// EventsBetween returns the events overlapping [from, to).
func (c *Calendar) EventsBetween(from, to time.Time) (*xa.List[*Event], error) {
	if !to.After(from) {
		return nil, fmt.Errorf("calendar: empty range %s to %s", from, to)
	}
	p := predicate.New()
	if err := p.Add("startDate", predicate.LessThan, to); err != nil {
		return nil, err
	}
	if err := p.Add("endDate", predicate.GreaterThan, from); err != nil {
		return nil, err
	}
	return c.Events().Filter(p)
}

// NewEvent creates an event in the calendar.
func (c *Calendar) NewEvent(ctx context.Context, summary string, start, end time.Time) (*Event, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("calendar: event %q ends before it starts", summary)
	}
	return c.Events().Push(ctx, "event", map[string]any{
		"summary":   summary,
		"startDate": start,
		"endDate":   end,
	})
}

// Event is a calendar event.
type Event struct {
	*xa.Object
}

func newEvent(o *xa.Object) *Event { return &Event{Object: o} }

func (e *Event) UID(ctx context.Context) (string, error)         { return e.GetString(ctx, "uid") }
func (e *Event) Summary(ctx context.Context) (string, error)     { return e.GetString(ctx, "summary") }
func (e *Event) Description(ctx context.Context) (string, error) { return e.GetString(ctx, "description") }
func (e *Event) Location(ctx context.Context) (string, error)    { return e.GetString(ctx, "location") }
func (e *Event) URL(ctx context.Context) (string, error)         { return e.GetString(ctx, "url") }
func (e *Event) Status(ctx context.Context) (string, error)      { return e.GetString(ctx, "status") }
func (e *Event) Recurrence(ctx context.Context) (string, error)  { return e.GetString(ctx, "recurrence") }
func (e *Event) AllDay(ctx context.Context) (bool, error)        { return e.GetBool(ctx, "alldayEvent") }
func (e *Event) Start(ctx context.Context) (time.Time, error)    { return e.GetTime(ctx, "startDate") }
func (e *Event) End(ctx context.Context) (time.Time, error)      { return e.GetTime(ctx, "endDate") }
func (e *Event) Stamp(ctx context.Context) (time.Time, error)    { return e.GetTime(ctx, "stampDate") }

func (e *Event) SetSummary(ctx context.Context, s string) error     { return e.Set(ctx, "summary", s) }
func (e *Event) SetLocation(ctx context.Context, s string) error    { return e.Set(ctx, "location", s) }
func (e *Event) SetDescription(ctx context.Context, s string) error { return e.Set(ctx, "description", s) }
func (e *Event) SetAllDay(ctx context.Context, v bool) error        { return e.Set(ctx, "alldayEvent", v) }
func (e *Event) SetStart(ctx context.Context, t time.Time) error    { return e.Set(ctx, "startDate", t) }
func (e *Event) SetEnd(ctx context.Context, t time.Time) error      { return e.Set(ctx, "endDate", t) }

// Duration returns the event's length.
func (e *Event) Duration(ctx context.Context) (time.Duration, error) {
	v, err := e.Eval(ctx, "get duration", "var e = "+e.JS()+";\nreturn {start: e.startDate(), end: e.endDate()};")
	if err != nil {
		return 0, err
	}
	return v.Field("end").Time().Sub(v.Field("start").Time()), nil
}

// Attendees returns the event's attendees.
func (e *Event) Attendees() *xa.List[*Attendee] {
	return xa.NewList(e.Object, "attendees", newAttendee)
}

// Show shows the event in the Calendar window.
func (e *Event) Show(ctx context.Context) error {
	_, err := e.Call(ctx, "show")
	return err
}

// MoveTo moves the event to another calendar.
func (e *Event) MoveTo(ctx context.Context, c *Calendar) error {
	_, err := e.Invoke(ctx, "move", e.Object, map[string]any{"to": c.Object})
	return err
}

// Attendee is an event attendee.
type Attendee struct {
	*xa.Object
}

func newAttendee(o *xa.Object) *Attendee { return &Attendee{Object: o} }

func (a *Attendee) DisplayName(ctx context.Context) (string, error) { return a.GetString(ctx, "displayName") }
func (a *Attendee) Email(ctx context.Context) (string, error)       { return a.GetString(ctx, "email") }
func (a *Attendee) Status(ctx context.Context) (string, error)      { return a.GetString(ctx, "participationStatus") }
