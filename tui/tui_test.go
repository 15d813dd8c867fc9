// ABOUTME: Tests for the feed browser TUI
// ABOUTME: Drives the bubbletea model with messages and checks rendered output
package tui

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/feed"
	"github.com/harperreed/courtside/models"
)

const testFeed = `[
	{"id": "m1", "title": "Tuesday doubles", "host_id": 1,
	 "participants": [{"player_id": 1, "status": "hosting"}, {"player_id": 2}]},
	{"id": "m2", "title": "Secret ladder", "privacy": "private", "host_id": 9},
	{"id": "m3", "title": "Sunday social", "host_id": 2, "participants": [{"player_id": 2}]},
	{"id": "m4", "title": "Open hit", "host_id": 5, "invitees": [{"invitee_id": 2, "status": "pending"}]}
]`

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "courtside.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	database := setupTestDB(t)

	_, err := db.ImportMatches(database, []byte(testFeed), time.Now())
	require.NoError(t, err)

	viewer := &models.Viewer{Name: "Sam", Profile: `{"id": 2}`}
	require.NoError(t, db.CreateViewer(database, viewer))

	m := NewModel(database, feed.NewBuilder(), viewer)
	next, _ := m.Update(m.Init()())
	return next.(Model)
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestLoadFeedHidesPrivateMatches(t *testing.T) {
	m := loadedModel(t)

	require.NoError(t, m.err)
	require.Len(t, m.rows, 3)

	out := m.View()
	assert.Contains(t, out, "Tuesday doubles")
	assert.Contains(t, out, "Sunday social")
	assert.NotContains(t, out, "Secret ladder")
	assert.Contains(t, out, "All (3)")
	assert.Contains(t, out, "Hosted (1)")
	assert.Contains(t, out, "Joined (1)")
	assert.Contains(t, out, "Available (1)")
}

func TestFilterTabs(t *testing.T) {
	m := loadedModel(t)

	m, _ = press(t, m, "tab")
	assert.Equal(t, FilterHosted, m.filter)
	rows := m.visibleRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "m3", rows[0].key)

	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tab")
	rows = m.visibleRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "m4", rows[0].key)
	assert.True(t, rows[0].view.IsInvited)

	m, _ = press(t, m, "tab")
	assert.Equal(t, FilterAll, m.filter)
}

func TestNavigationStaysInBounds(t *testing.T) {
	m := loadedModel(t)

	for range 10 {
		m, _ = press(t, m, "down")
	}
	assert.Equal(t, 2, m.selectedRow)

	for range 10 {
		m, _ = press(t, m, "k")
	}
	assert.Equal(t, 0, m.selectedRow)
}

func TestDetailView(t *testing.T) {
	m := loadedModel(t)

	m, _ = press(t, m, "enter")
	require.Equal(t, ViewDetail, m.viewMode)

	out := m.View()
	assert.Contains(t, out, "TUESDAY DOUBLES")
	assert.Contains(t, out, "2 of 4 (2 open)")
	assert.Contains(t, out, "(you)")

	m, _ = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
}

func TestLeaveMatch(t *testing.T) {
	m := loadedModel(t)

	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "l")
	require.Equal(t, ViewConfirmLeave, m.viewMode)
	assert.Contains(t, m.View(), "Remove Sam from Tuesday doubles?")

	m, cmd := press(t, m, "y")
	require.NotNil(t, cmd)
	msg := cmd()
	left, ok := msg.(leftMatchMsg)
	require.True(t, ok)
	assert.True(t, left.removed)
	require.NoError(t, left.err)

	next, reload := m.Update(msg)
	m = next.(Model)
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, "Left m1", m.status)

	next, _ = m.Update(reload())
	m = next.(Model)
	require.Len(t, m.rows, 3)
	assert.Equal(t, models.MatchAvailable, m.rows[0].view.Type)
	assert.Equal(t, 1, m.rows[0].view.Occupied)
}

func TestLeaveRequiresMembership(t *testing.T) {
	m := loadedModel(t)

	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "enter")
	require.Equal(t, ViewDetail, m.viewMode)

	// Invitees may decline through leave as well.
	m, _ = press(t, m, "l")
	assert.Equal(t, ViewConfirmLeave, m.viewMode)

	m, _ = press(t, m, "n")
	assert.Equal(t, ViewDetail, m.viewMode)
}

func TestQuit(t *testing.T) {
	m := loadedModel(t)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestEmptyFeed(t *testing.T) {
	database := setupTestDB(t)
	viewer := &models.Viewer{Name: "Nobody"}
	require.NoError(t, db.CreateViewer(database, viewer))

	m := NewModel(database, nil, viewer)
	next, _ := m.Update(m.Init()())
	m = next.(Model)

	assert.Empty(t, m.rows)
	assert.True(t, strings.Contains(m.View(), "All (0)"))

	m, _ = press(t, m, "enter")
	assert.Equal(t, ViewList, m.viewMode)
}
