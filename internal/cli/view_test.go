package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayweave/internal/teatest"
	"github.com/alexanderramin/dayweave/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDayViewDriver(t *testing.T, app *App, day time.Time) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newDayViewModel(context.Background(), app, day), teatest.WithSize(100, 30))
	d.DrainInit()
	return d
}

func viewDay(t *testing.T, d *teatest.Driver) time.Time {
	t.Helper()
	m, ok := d.Model.(dayViewModel)
	require.True(t, ok)
	require.NoError(t, m.err)
	return m.day
}

func TestDayView_NavigatesDays(t *testing.T) {
	app := testApp(t)
	seedStandup(t, app)

	d := newDayViewDriver(t, app, testutil.Day(2025, time.March, 14))
	assert.Contains(t, d.View(), "Standup")
	assert.Contains(t, d.View(), "next day")

	d.Press(tea.KeyRight)
	assert.True(t, testutil.Day(2025, time.March, 15).Equal(viewDay(t, d)))
	assert.Contains(t, d.View(), "No events.")

	d.PressKey('h')
	d.PressKey('h')
	assert.True(t, testutil.Day(2025, time.March, 13).Equal(viewDay(t, d)))

	d.PressKey('t')
	assert.True(t, testutil.Day(2025, time.March, 14).Equal(viewDay(t, d)))
}

func TestDayView_PlanKey(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "add", "Reading", "--duration", "45")
	require.NoError(t, err)

	d := newDayViewDriver(t, app, testutil.Day(2025, time.March, 14))
	d.PressKey('p')

	m := d.Model.(dayViewModel)
	require.NoError(t, m.err)
	assert.Equal(t, "1 placed", m.status)
	assert.Contains(t, d.View(), "Reading")
}

func TestDayView_Quit(t *testing.T) {
	app := testApp(t)
	d := newDayViewDriver(t, app, testutil.Day(2025, time.March, 14))
	d.PressKey('q')
	assert.True(t, d.Quitting)
}
