// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive match feed browser for one viewer with detail and leave views
package tui

import (
	"database/sql"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/feed"
	"github.com/harperreed/courtside/identity"
	"github.com/harperreed/courtside/models"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewConfirmLeave
)

// Filter selects which match types the list shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterHosted
	FilterJoined
	FilterAvailable
)

var filterNames = []string{"All", "Hosted", "Joined", "Available"}

func (f Filter) allows(t models.MatchType) bool {
	switch f {
	case FilterHosted:
		return t == models.MatchHosted
	case FilterJoined:
		return t == models.MatchJoined
	case FilterAvailable:
		return t == models.MatchAvailable
	}
	return true
}

// feedRow pairs a view-model with the stored match it came from.
type feedRow struct {
	key    string
	view   models.MatchView
	record gjson.Result
}

type feedLoadedMsg struct {
	rows []feedRow
	err  error
}

type leftMatchMsg struct {
	key     string
	removed bool
	err     error
}

// Model is the main bubbletea model
type Model struct {
	db      *sql.DB
	builder *feed.Builder
	viewer  *models.Viewer
	ids     identity.Set

	viewMode ViewMode
	filter   Filter
	rows     []feedRow

	selectedRow int
	status      string

	width  int
	height int
	err    error
}

// NewModel creates a feed browser for viewer.
func NewModel(database *sql.DB, builder *feed.Builder, viewer *models.Viewer) Model {
	if builder == nil {
		builder = feed.NewBuilder()
	}
	return Model{
		db:       database,
		builder:  builder,
		viewer:   viewer,
		ids:      db.ViewerIdentity(viewer),
		viewMode: ViewList,
		width:    100,
		height:   24,
	}
}

// Run starts the full-screen browser and blocks until it exits.
func Run(database *sql.DB, builder *feed.Builder, viewer *models.Viewer) error {
	_, err := tea.NewProgram(NewModel(database, builder, viewer), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadFeed
}

func (m Model) loadFeed() tea.Msg {
	snapshots, err := db.ListMatchSnapshots(m.db)
	if err != nil {
		return feedLoadedMsg{err: err}
	}

	var rows []feedRow
	for i, record := range db.MatchPayloads(snapshots) {
		if view, ok := m.builder.Build(record, m.ids); ok {
			rows = append(rows, feedRow{key: snapshots[i].MatchKey, view: view, record: record})
		}
	}
	return feedLoadedMsg{rows: rows}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case feedLoadedMsg:
		m.err = msg.err
		m.rows = msg.rows
		if n := len(m.visibleRows()); m.selectedRow >= n {
			m.selectedRow = max(n-1, 0)
		}
		return m, nil
	case leftMatchMsg:
		m.viewMode = ViewList
		switch {
		case msg.err != nil:
			m.err = msg.err
		case msg.removed:
			m.status = "Left " + msg.key
		default:
			m.status = "Not on the roster of " + msg.key
		}
		return m, m.loadFeed
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewConfirmLeave:
		return m.renderConfirmLeaveView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.viewMode == ViewList {
			return m, tea.Quit
		}
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewConfirmLeave:
		return m.handleConfirmLeaveKeys(msg)
	}

	return m, nil
}

// visibleRows returns the rows that pass the current filter.
func (m Model) visibleRows() []feedRow {
	var rows []feedRow
	for _, r := range m.rows {
		if m.filter.allows(r.view.Type) {
			rows = append(rows, r)
		}
	}
	return rows
}

func (m Model) selected() (feedRow, bool) {
	rows := m.visibleRows()
	if m.selectedRow < 0 || m.selectedRow >= len(rows) {
		return feedRow{}, false
	}
	return rows[m.selectedRow], true
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)
