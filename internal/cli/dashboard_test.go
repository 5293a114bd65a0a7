package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sayanitariq-techno/Tariq/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardModel_LoadAndRender(t *testing.T) {
	app := testApp(t, day1.Add(3*time.Hour))
	app.Tick = 5 * time.Second
	seedLineage(t, app)
	_, err := executeCmd(t, app, "activity", "start", "A1")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "activity", "hold", "A1", "--reason", "Weather")
	require.NoError(t, err)

	m := newDashboardModel(app)
	assert.Contains(t, m.View(), "Loading")

	msg := m.load()()
	loaded, ok := msg.(dashboardLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	require.NotNil(t, loaded.sel)

	next, _ := m.Update(loaded)
	m = next.(dashboardModel)
	view := ansiPattern.ReplaceAllString(m.View(), "")
	assert.Contains(t, view, "TARIQ")
	assert.Contains(t, view, "Vessel V-101")
	assert.Contains(t, view, "delayed 2")
	assert.Contains(t, view, "Weather")
	assert.Len(t, m.table.Rows(), 1)
}

func TestDashboardModel_TickReloadsAndQuits(t *testing.T) {
	app := testApp(t, day1)
	m := newDashboardModel(app)

	next, cmd := m.Update(dashboardTickMsg(day1))
	m = next.(dashboardModel)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDashboardModel_DrivenRefresh(t *testing.T) {
	app := testApp(t, day1.Add(3*time.Hour))
	app.Tick = time.Hour
	seedLineage(t, app)

	d := teatest.New(t, newDashboardModel(app), teatest.WithSize(100, 40))
	d.Start()
	assert.Equal(t, 1, d.Dropped)
	assert.Contains(t, ansiPattern.ReplaceAllString(d.View(), ""), "delayed 2")

	_, err := executeCmd(t, app, "activity", "start", "A1")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "activity", "complete", "A1")
	require.NoError(t, err)

	d.Press("r")
	view := ansiPattern.ReplaceAllString(d.View(), "")
	assert.Contains(t, view, "completed 1")

	d.Press("q")
	assert.True(t, d.Quitting)
}
