package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("COURTSIDE · " + m.viewer.Name))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	s.WriteString(m.renderTable())
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		s.WriteString("\n")
	} else if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}

	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string

	for i, name := range filterNames {
		label := fmt.Sprintf("%s (%d)", name, m.countType(Filter(i)))
		if Filter(i) == m.filter {
			rendered = append(rendered, tabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) countType(f Filter) int {
	n := 0
	for _, r := range m.rows {
		if f.allows(r.view.Type) {
			n++
		}
	}
	return n
}

func (m Model) renderTable() string {
	columns := []table.Column{
		{Title: "Type", Width: 10},
		{Title: "Match", Width: 30},
		{Title: "Start", Width: 16},
		{Title: "Players", Width: 8},
		{Title: "Spots", Width: 6},
		{Title: "Flags", Width: 24},
	}

	var rows []table.Row
	for _, r := range m.visibleRows() {
		start := ""
		if r.view.StartsAt != nil {
			start = r.view.StartsAt.Local().Format("Mon Jan 2 15:04")
		}
		title := r.view.Title
		if title == "" {
			title = r.key
		}

		rows = append(rows, table.Row{
			string(r.view.Type),
			title,
			start,
			fmt.Sprintf("%d/%d", r.view.Occupied, r.view.PlayerLimit),
			fmt.Sprintf("%d", r.view.SpotsRemaining),
			flags(r),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func flags(r feedRow) string {
	var out []string
	if r.view.IsInvited && !r.view.IsJoined {
		out = append(out, "invited")
	}
	if r.view.IsPrivate {
		out = append(out, "private")
	}
	if r.view.IsFull() {
		out = append(out, "full")
	}
	if r.view.LowRoster {
		out = append(out, "needs players")
	}
	return strings.Join(out, ", ")
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch filter",
		"Enter: View details",
		"r: Reload",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.visibleRows())-1 {
			m.selectedRow++
		}
	case "tab":
		m.filter = (m.filter + 1) % Filter(len(filterNames))
		m.selectedRow = 0
	case "shift+tab":
		m.filter = (m.filter + Filter(len(filterNames)) - 1) % Filter(len(filterNames))
		m.selectedRow = 0
	case "enter":
		if _, ok := m.selected(); ok {
			m.viewMode = ViewDetail
			m.status = ""
		}
	case "r":
		m.status = ""
		m.err = nil
		return m, m.loadFeed
	}

	return m, nil
}
