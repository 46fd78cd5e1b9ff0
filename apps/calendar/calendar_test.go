package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/xa/osa/osatest"
	"github.com/tmc/xa/xatest"
)

func openCalendar(t *testing.T) (*Application, *osatest.Runner) {
	t.Helper()
	sess, r, _ := xatest.NewSession(xatest.Running(Name, BundleID, 88))
	app, err := Open(context.Background(), sess)
	require.NoError(t, err)
	return app, r
}

var (
	start = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	end   = start.Add(time.Hour)
)

func TestNewEvent(t *testing.T) {
	ctx := context.Background()
	app, r := openCalendar(t)

	r.Reply(osatest.Ref(`Application("Calendar").calendars[0].events.byId("E1")`))
	ev, err := app.NewEvent(ctx, "Standup", start, end)
	require.NoError(t, err)
	assert.Equal(t, `Application("Calendar").calendars[0].events.byId("E1")`, ev.JS())
	assert.Contains(t, r.Last(), `Application("Calendar").Event({"endDate": new Date("2024-05-01T11:00:00Z"), "startDate": new Date("2024-05-01T10:00:00Z"), "summary": "Standup"})`)
	assert.Contains(t, r.Last(), `Application("Calendar").calendars[0].events.push(o);`)

	_, err = app.NewEvent(ctx, "Backwards", end, start)
	assert.Error(t, err)
	assert.Equal(t, 1, r.Count())
}

func TestEventsBetween(t *testing.T) {
	app, _ := openCalendar(t)
	evs, err := app.Calendars().ByName("Work").EventsBetween(start, end)
	require.NoError(t, err)
	assert.Equal(t, `Application("Calendar").calendars.byName("Work").events.whose({"_and": [{"startDate": {"_lessThan": new Date("2024-05-01T11:00:00Z")}}, {"endDate": {"_greaterThan": new Date("2024-05-01T10:00:00Z")}}]})`, evs.JS())

	_, err = app.DefaultCalendar().EventsBetween(end, start)
	assert.Error(t, err)
}

func TestViews(t *testing.T) {
	ctx := context.Background()
	app, r := openCalendar(t)

	require.NoError(t, app.SwitchView(ctx, WeekView))
	assert.Contains(t, r.Last(), `Application("Calendar").switchView({"to": "week view"})`)

	assert.Error(t, app.SwitchView(ctx, View("decade view")))

	require.NoError(t, app.ViewAt(ctx, start))
	assert.Contains(t, r.Last(), `Application("Calendar").viewCalendar({"at": new Date("2024-05-01T10:00:00Z")})`)

	require.NoError(t, app.ReloadCalendars(ctx))
	assert.Contains(t, r.Last(), `Application("Calendar").reloadCalendars()`)
}

func TestEventDuration(t *testing.T) {
	app, r := openCalendar(t)
	r.Reply(map[string]any{"start": osatest.Date(start), "end": osatest.Date(end)})
	d, err := app.DefaultCalendar().Events().First().Duration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)
}
